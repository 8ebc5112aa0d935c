package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// maxInputBytes caps text read from a file or stdin.
const maxInputBytes = 32 << 20

var errNoInput = errors.New("no input: pass a file or pipe text on stdin")

// readInput returns the text to process from args[0] or stdin. Files with
// a known markup extension are converted to plain text first.
func readInput(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return "", errNoInput
		}
		data, err := io.ReadAll(io.LimitReader(in, maxInputBytes))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	path := args[0]
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	if normaliserRegistry == nil {
		return string(data), nil
	}

	extracted, err := normaliserRegistry.Normalise(ctx, &domain.RawText{
		URI:      path,
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Content:  data,
	})
	if errors.Is(err, domain.ErrUnsupportedFile) {
		return string(data), nil
	}
	if err != nil {
		return "", fmt.Errorf("normalise %s: %w", path, err)
	}
	return extracted.Text, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxInputBytes))
}
