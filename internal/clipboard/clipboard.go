package clipboard

import (
	"context"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	domainErrors "github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/runner"
)

// Sink receives the final payload. A nil error means the whole text is on
// the clipboard.
type Sink interface {
	Copy(ctx context.Context, text string) error
}

// System writes to the OS clipboard: pbcopy on macOS, atotto/clipboard
// (xclip, xsel, wl-copy, or the Windows API) elsewhere.
type System struct {
	runner runner.Runner
	goos   string
	write  func(string) error
}

func NewSystem(r runner.Runner) *System {
	return &System{
		runner: r,
		goos:   runtime.GOOS,
		write:  clipboard.WriteAll,
	}
}

func (s *System) Copy(ctx context.Context, text string) error {
	log := logger.FromContext(ctx)

	if s.goos == "darwin" {
		res, err := s.runner.Run(ctx, strings.NewReader(text), "pbcopy")
		if err != nil {
			return domainErrors.ErrClipboard.WithError(err).WithContext("stderr", res.Stderr)
		}
		log.Debug("payload copied", "backend", "pbcopy", "size", len(text))
		return nil
	}

	if clipboard.Unsupported {
		return domainErrors.ErrClipboard.WithContext("os", s.goos)
	}
	if err := s.write(text); err != nil {
		return domainErrors.ErrClipboard.WithError(err)
	}
	log.Debug("payload copied", "backend", "atotto", "size", len(text))
	return nil
}
