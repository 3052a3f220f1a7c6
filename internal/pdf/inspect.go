// Package pdf checks downloaded invoice PDFs
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned when the data lacks the PDF header
var ErrNotPDF = errors.New("not a PDF document")

var disableConfigDir sync.Once

// Info describes a PDF document
type Info struct {
	Size     int
	Version  string
	Pages    int
	Title    string
	Producer string
}

// Inspect validates data as a PDF document and reports its metadata
func Inspect(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	return &Info{
		Size:     len(data),
		Version:  ctx.XRefTable.Version().String(),
		Pages:    ctx.PageCount,
		Title:    ctx.XRefTable.Title,
		Producer: ctx.XRefTable.Producer,
	}, nil
}
