package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/equity"
	"github.com/etnz/equity/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// GrantsFile and MarketDir locate the user's data. The assist command
// overrides them from its flags before starting the agent.
var (
	GrantsFile = "grants.jsonl"
	MarketDir  = ".market"
)

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

			The user is an employee asking about his equity compensation: RSU grants, stock options
			and ESPP plans. He will assume you already know his grants, check them first with
			the Analyst to understand what he holds.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert grounded by Google Search, for questions
// about companies, stock prices, taxation of equity plans and the like.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is an equity compensation advisor.
		Very well aware of financial markets, company news, and the taxation
		of RSUs, stock options and ESPP plans in most countries.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in equity compensation, you can search and find anything related to
			companies, markets, stock prices and the taxation of employee equity.
			You leverage Google Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the user's grants file. It
// exposes the engine reports as callable functions.
func NewAnalyst() *Expert {
	lib := []Function{summaryFunc, scheduleFunc, esppFunc}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the user's equity grants.
		He can compute vesting schedules, values vested and unvested, and simulate ESPP purchases.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's equity compensation grants.
				You know how to use the Tools to extract relevant information about the user's
				grants. You are part of a team of experts, yours is everything about the user's
				RSUs, options and ESPP plans. They might ask you questions in approximative
				language, figure out what they meant.

				Use the available tools to get
				  - the valuation summary of all grants
				  - the vesting schedule of a symbol
				  - the ESPP purchase report of a symbol
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a Function from a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

var dateSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The date on which to compute the report, in YYYY-MM-DD format. Today is the default.",
}

var symbolSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The stock ticker symbol of the grant, e.g. ACME.",
}

var summaryFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Summary",
		Description: `Summary values all the user's RSU and options grants on a given day.
		It reports per symbol the vested and unvested units, their values, and the next vesting date.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"date": dateSchema},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted valuation summary of all grants.",
		},
	},
	Func: report("Summary", func(on equity.Date, symbol string) (string, error) {
		book, snap, err := load(on)
		if err != nil {
			return "", err
		}
		var results []equity.ValuationResult
		for _, sym := range book.Symbols() {
			r, err := book.Valuation(sym, snap)
			if err != nil {
				return "", err
			}
			if r.Symbol == "" {
				continue // symbol has only ESPP plans
			}
			results = append(results, r)
		}
		return renderer.SummaryMarkdown(on, results), nil
	}),
}

var scheduleFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Schedule",
		Description: `Schedule computes the vesting schedule of the user's grants for one symbol:
		every vesting date with the number of units vesting on it.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"symbol": symbolSchema, "date": dateSchema},
			Required:   []string{"symbol"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted vesting schedule.",
		},
	},
	Func: report("Schedule", func(on equity.Date, symbol string) (string, error) {
		book, _, err := load(on)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, g := range book.BySymbol(symbol) {
			var policy equity.VestingPolicy
			switch grant := g.(type) {
			case equity.RSUGrant:
				policy = grant.Vesting
			case equity.OptionsGrant:
				policy = grant.Vesting
			default:
				continue
			}
			sched, err := policy.Schedule()
			if err != nil {
				return "", err
			}
			b.WriteString(renderer.ScheduleMarkdown(symbol, on, sched))
			b.WriteString("\n")
		}
		if b.Len() == 0 {
			return "", fmt.Errorf("no vesting grant found for symbol %q", symbol)
		}
		return b.String(), nil
	}),
}

var esppFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "ESPP",
		Description: `ESPP simulates the user's employee stock purchase plan for one symbol:
		past purchases, pending contribution and gain or loss on a given day.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"symbol": symbolSchema, "date": dateSchema},
			Required:   []string{"symbol"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted ESPP purchase report.",
		},
	},
	Func: report("ESPP", func(on equity.Date, symbol string) (string, error) {
		book, snap, err := load(on)
		if err != nil {
			return "", err
		}
		for _, g := range book.BySymbol(symbol) {
			plan, ok := g.(equity.ESPPPlan)
			if !ok {
				continue
			}
			result := plan.Simulate(on, snap.Rates(), snap.PriceOrZero(symbol))
			return renderer.ESPPMarkdown(result), nil
		}
		return "", fmt.Errorf("no ESPP plan found for symbol %q", symbol)
	}),
}

// report wraps a rendering function into the genai callback shape,
// handling the date and symbol arguments and error reporting.
func report(name string, render func(on equity.Date, symbol string) (string, error)) func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		fresp := &genai.FunctionResponse{
			ID:       id,
			Name:     name,
			Response: map[string]any{},
		}
		on, err := parseDate(args)
		if err != nil {
			fresp.Response["error"] = err.Error()
			return fresp
		}
		symbol, _ := args["symbol"].(string)

		output, err := render(on, symbol)
		if err != nil {
			fresp.Response["error"] = err.Error()
			return fresp
		}
		fresp.Response["output"] = output
		return fresp
	}
}

// load reads the grants file and the market folder into a book and a
// snapshot on the given day. Missing files yield empty data, not errors.
func load(on equity.Date) (*equity.Book, *equity.Snapshot, error) {
	book := equity.NewBook()
	f, err := os.Open(GrantsFile)
	if err == nil {
		defer f.Close()
		book, err = equity.DecodeGrants(f)
		if err != nil {
			return nil, nil, fmt.Errorf("could not decode grants file %q: %w", GrantsFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("could not open grants file %q: %w", GrantsFile, err)
	}

	prices, err := openOrEmpty(filepath.Join(MarketDir, "prices.jsonl"))
	if err != nil {
		return nil, nil, err
	}
	defer prices.Close()
	rates, err := openOrEmpty(filepath.Join(MarketDir, "rates.jsonl"))
	if err != nil {
		return nil, nil, err
	}
	defer rates.Close()

	snap, err := equity.DecodeSnapshot(on, prices, rates)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode market folder %q: %w", MarketDir, err)
	}
	return book, snap, nil
}

func openOrEmpty(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return os.Open(os.DevNull)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, nil
}

func parseDate(args map[string]any) (equity.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return equity.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return equity.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	date, err := equity.ParseDate(sdate)
	if err != nil {
		return equity.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date, got %q", sdate)
	}
	return date, nil
}
