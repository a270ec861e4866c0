package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank format major version this build understands.
const SupportedMajor = "v1"

//go:embed data/questions.json
var defaultBankJSON []byte

// ValidationError lists every problem found in a bank document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid bank: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid bank: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type rawQuestion struct {
	Subject       string   `json:"subject"`
	Year          int      `json:"year"`
	Week          int      `json:"week"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type rawDocument struct {
	Version   string        `json:"version"`
	Title     string        `json:"title"`
	Questions []rawQuestion `json:"questions"`
}

// Default returns the bank compiled into the binary.
func Default() (*Bank, error) {
	return Parse(defaultBankJSON)
}

// LoadFile reads and validates a bank from a JSON file.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(data)
}

// Load reads and validates a bank from r.
func Load(r io.Reader) (*Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(data)
}

// Parse validates a bank document and builds the Bank. The document is either
// a bare array of questions or an object with version, title and questions.
func Parse(data []byte) (*Bank, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}

	bare := false
	if arr, ok := parsed.([]any); ok {
		bare = true
		parsed = map[string]any{"questions": arr}
	}

	compiled, err := compiledDocumentSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	var doc rawDocument
	if bare {
		err = json.Unmarshal(data, &doc.Questions)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if problems := checkDocument(doc); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	questions := make([]Question, len(doc.Questions))
	for i, rq := range doc.Questions {
		questions[i] = Question{
			Subject:       rq.Subject,
			Year:          rq.Year,
			Week:          rq.Week,
			Text:          rq.Question,
			Options:       rq.Options,
			CorrectAnswer: rq.CorrectAnswer,
		}
	}

	b := New(questions)
	b.title = doc.Title
	b.version = doc.Version
	return b, nil
}

// checkDocument applies the rules a JSON schema cannot express.
func checkDocument(doc rawDocument) []string {
	var problems []string

	if doc.Version != "" {
		switch {
		case !semver.IsValid(doc.Version):
			problems = append(problems, fmt.Sprintf("version %q is not a semantic version", doc.Version))
		case semver.Major(doc.Version) != SupportedMajor:
			problems = append(problems, fmt.Sprintf("version %s is not supported (want %s.x)", doc.Version, SupportedMajor))
		}
	}

	for i, q := range doc.Questions {
		if strings.TrimSpace(q.Subject) == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty subject", i))
		}
		if strings.TrimSpace(q.Question) == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty text", i))
		}
		if q.Week < 1 || q.Week > MaxWeek {
			problems = append(problems, fmt.Sprintf("question %d: week %d out of range 1-%d", i, q.Week, MaxWeek))
		}

		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt] {
				problems = append(problems, fmt.Sprintf("question %d: duplicate option %q", i, opt))
			}
			seen[opt] = true
		}
		if !seen[q.CorrectAnswer] {
			problems = append(problems, fmt.Sprintf("question %d: correct answer %q is not an option", i, q.CorrectAnswer))
		}
	}

	return problems
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// compiledDocumentSchema compiles the bank document schema once.
func compiledDocumentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://quizbank-bank.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile bank schema: %w", schemaErr)
		}
	})
	return schemaCompiled, schemaErr
}

// IsValidationError reports whether err is a bank validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
