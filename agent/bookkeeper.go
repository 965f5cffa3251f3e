package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/tally"
	"github.com/etnz/tally/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// LedgerFile is the snapshot the bookkeeper reads. The cmd package points it
// at the application's ledger file.
var LedgerFile = "tally.json"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand who owes what in a group of people sharing expenses.
			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume that you know about the participants and tasks in their ledger,
			check the ledger first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper creates the expert in charge of reading the user's ledger.
func NewBookkeeper() *Expert {
	lib := []Function{balancesFunc, participantFunc}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's shared-expense ledger.
		He can report every participant's balance and the full detail of any participant:
		the tasks they share, the tasks they paid for, and their direct payments.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's shared-expense ledger.
				You know how to use the Tools to extract relevant information about
				who paid for what and who owes whom. You are part of a team of experts;
				they might ask you questions about the ledger, pardon their approximative
				language and figure out what they meant.

				A positive balance means the participant owes money to the group,
				a negative one means the group owes them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

var balancesFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "Balances",
		Description: `Balances lists every participant in the ledger with their net balance.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of every participant and their balance.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := loadLedger()
		if err != nil {
			return errResponse(id, "Balances", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Balances",
			Response: map[string]any{
				"output": renderer.Balances(ledger),
			},
		}
	},
}

var participantFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Participant",
		Description: `Participant reports the full detail of one participant: balance,
		shared tasks with per-share cost, paid tasks, and direct payments.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The participant's name, as listed by Balances.",
				},
			},
			Required: []string{"name"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted detail of the participant.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		name, ok := args["name"].(string)
		if !ok {
			return errResponse(id, "Participant", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
		}
		ledger, err := loadLedger()
		if err != nil {
			return errResponse(id, "Participant", err)
		}
		md, err := renderer.Participant(ledger, name)
		if err != nil {
			return errResponse(id, "Participant", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Participant",
			Response: map[string]any{
				"output": md,
			},
		}
	},
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// loadLedger reads the ledger from the LedgerFile snapshot. If the file does
// not exist, it returns a new empty ledger.
func loadLedger() (*tally.Ledger, error) {
	f, err := os.Open(LedgerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tally.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", LedgerFile, err)
	}
	defer f.Close()

	ledger, err := tally.DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", LedgerFile, err)
	}
	return ledger, nil
}
