package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/logger"
)

// JSONL reads documents from a file holding one JSON object per line:
//
//	{"name": "lose_yourself.txt", "text": "Look, if you had one shot..."}
//
// Documents keep their line order.
type JSONL struct {
	Path string
}

type jsonlItem struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Load implements Source. Malformed lines, lines without a name and
// repeated names are skipped with a warning.
func (j JSONL) Load(ctx context.Context) ([]Document, []Skipped, error) {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file %s: %w", j.Path, err)
	}

	log := logger.WithComponent("corpus")
	var (
		docs    []Document
		skipped []Skipped
	)
	seen := make(map[string]struct{})
	for i, line := range strings.Split(string(data), "\n") {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref := fmt.Sprintf("%s:%d", j.Path, i+1)

		var item jsonlItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Warn("skipping malformed line", "line", ref, "error", err)
			skipped = append(skipped, Skipped{Name: ref, Err: err})
			continue
		}
		if item.Name == "" {
			err := fmt.Errorf("%w: missing name", internalerr.ErrInvalidInput)
			log.Warn("skipping document", "line", ref, "error", err)
			skipped = append(skipped, Skipped{Name: ref, Err: err})
			continue
		}
		if _, dup := seen[item.Name]; dup {
			log.Warn("skipping document", "line", ref, "name", item.Name, "error", errDuplicateName)
			skipped = append(skipped, Skipped{Name: item.Name, Err: errDuplicateName})
			continue
		}
		seen[item.Name] = struct{}{}
		docs = append(docs, Document{Name: item.Name, Text: item.Text})
	}
	return docs, skipped, nil
}
