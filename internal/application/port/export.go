package port

import (
	"io"

	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
)

// ReportWriter renders a classified collection for download
type ReportWriter interface {
	WriteCollectionReport(w io.Writer, report *reconcile.CollectionReport) error
	ContentType() string
	FileExtension() string
}
