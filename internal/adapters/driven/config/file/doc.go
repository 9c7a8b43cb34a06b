// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the sizhu config directory (~/.sizhu).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable reading prompt templates
//   - PromptWatcher: reloads prompts when their files change
package file
