package llm

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"

	"github.com/dwpark/llm/claude"
)

type env struct {
	userPrompt   string
	systemPrompt string
	model        string
	maxTokens    int
	isChat       bool
	verbose      bool
}

// CLI is the smoke-test entry point: send one prompt (default "1+1=?") to
// Claude and print the reply.
func CLI(args []string) int {
	app := env{}
	err := app.fromArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing args: %v\n", err)
		return 2
	}

	if err := app.run(); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func (app *env) fromArgs(args []string) error {
	// A missing .env is fine; the defaults come from the process
	// environment either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	fl := flag.NewFlagSet("llm", flag.ContinueOnError)

	var prompt string
	fl.StringVar(&prompt, "p", "1+1=?", "user prompt to Claude")
	fl.StringVar(&prompt, "prompt", "1+1=?", "user prompt to Claude")

	var system string
	fl.StringVar(&system, "s", "", "system prompt to Claude")
	fl.StringVar(&system, "system", "", "system prompt to Claude")

	var model string
	fl.StringVar(&model, "m", "default", "the Claude model to use")
	fl.StringVar(&model, "model", "default", "the Claude model to use")

	var maxTokens int
	fl.IntVar(&maxTokens, "t", DefaultMaxTokens, "max tokens in the response")
	fl.IntVar(&maxTokens, "max-tokens", DefaultMaxTokens, "max tokens in the response")

	var isChat bool
	fl.BoolVar(&isChat, "c", false, "Start a live chat that retains conversation history")
	fl.BoolVar(&isChat, "chat", false, "Start a live chat that retains conversation history")

	var verbose bool
	fl.BoolVar(&verbose, "v", false, "dump the parsed CLI state before running")
	fl.BoolVar(&verbose, "verbose", false, "dump the parsed CLI state before running")

	if err := fl.Parse(args); err != nil {
		return fmt.Errorf("parsing command line arguments: %w", err)
	}

	app.userPrompt = prompt
	app.systemPrompt = system
	app.model = model
	app.maxTokens = maxTokens
	app.isChat = isChat
	app.verbose = verbose

	return nil
}

func (app *env) run() error {
	if app.verbose {
		spew.Dump(app)
	}

	// Live chat session
	// The user prompts come from stdin instead of a CLI argument
	if app.isChat {
		return app.runChatSession()
	}

	// One off prompting
	// A system prompt needs the history path; Chat only carries a user message
	var answer string
	var err error
	if app.systemPrompt != "" {
		answer, err = ChatWithHistory([]claude.Message{
			{Role: "system", Content: app.systemPrompt},
			{Role: "user", Content: app.userPrompt},
		}, app.model, app.maxTokens, DefaultTemperature)
	} else {
		answer, err = Chat(app.userPrompt, app.model, app.maxTokens)
	}
	if err != nil {
		return err
	}

	fmt.Println(answer)

	return nil
}

// runChatSession keeps the conversation history across turns. The system
// prompt, when set, rides along on every request.
func (app *env) runChatSession() error {
	fmt.Println("Welcome to the chat session")

	chatHistory := []claude.Message{}
	if app.systemPrompt != "" {
		chatHistory = append(chatHistory, claude.Message{Role: "system", Content: app.systemPrompt})
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		input, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		chatHistory = append(chatHistory, claude.Message{Role: "user", Content: strings.TrimSpace(input)})

		answer, err := ChatWithHistory(chatHistory, app.model, app.maxTokens, DefaultTemperature)
		if err != nil {
			return err
		}

		fmt.Println("Answer:", answer)

		chatHistory = append(chatHistory, claude.Message{Role: "assistant", Content: answer})
	}
}
