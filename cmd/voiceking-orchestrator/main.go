// Command voiceking-orchestrator runs the orchestrator in CLI mode: one
// JSON request document on stdin, one JSON response document plus newline
// on stdout. Exit codes: 0 success, 1 no input available, 2 input not
// parseable as a request document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/voiceking/voiceking-orchestrator/internal/config"
	"github.com/voiceking/voiceking-orchestrator/internal/models"
	"github.com/voiceking/voiceking-orchestrator/internal/orchestrator"
	"github.com/voiceking/voiceking-orchestrator/internal/validation"
)

const (
	exitOK         = 0
	exitNoInput    = 1
	exitBadRequest = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("voiceking-orchestrator", flag.ContinueOnError)
	profilePath := fs.String("profile", "", "optional desktop profile file merged into the request")
	if err := fs.Parse(args); err != nil {
		return exitBadRequest
	}

	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		fmt.Fprintln(os.Stderr, "Очікую JSON у стандартному вводі.")
		return exitNoInput
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Помилка читання вводу: %v\n", err)
		return exitNoInput
	}
	if len(input) == 0 {
		fmt.Fprintln(os.Stderr, "Очікую JSON у стандартному вводі.")
		return exitNoInput
	}

	if err := validation.ValidateRequest(input); err != nil {
		fmt.Fprintf(os.Stderr, "Помилка читання JSON: %v\n", err)
		return exitBadRequest
	}

	var request models.Request
	if err := json.Unmarshal(input, &request); err != nil {
		fmt.Fprintf(os.Stderr, "Помилка читання JSON: %v\n", err)
		return exitBadRequest
	}

	var defaultEngine string
	if *profilePath != "" {
		profile, err := config.LoadProfile(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Помилка профілю: %v\n", err)
			return exitBadRequest
		}
		profile.Merge(&request)
		defaultEngine = profile.DefaultSearchEngine
	}

	response := orchestrator.New(defaultEngine).Process(&request)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Помилка запису відповіді: %v\n", err)
		return exitBadRequest
	}
	return exitOK
}
