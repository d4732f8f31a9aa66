package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and
// human-readable.
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs a successful operation result. id is printed alone in
// quiet mode (for shell capture), data is the JSON payload, human is the
// styled line(s) for interactive use.
func (f *OutputFormatter) Success(id string, data interface{}, human string) error {
	if f.Quiet {
		fmt.Println(id)
		return nil
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	fmt.Println(human)
	return nil
}

// Error outputs error information.
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion.
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", suggestion)
	}
	return nil
}
