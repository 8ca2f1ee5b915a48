package transaction

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/session"
)

// ExportTransactionsOutput is a CSV download.
type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type transactionExporter interface {
	WriteCSV(ctx context.Context, userID uuid.UUID, out io.Writer) error
}

// ExportTransactionsHandler handles GET /export/transactions.csv.
type ExportTransactionsHandler struct {
	TransactionService transactionExporter
}

func NewExportTransactionsHandler(svc transactionExporter) *ExportTransactionsHandler {
	return &ExportTransactionsHandler{TransactionService: svc}
}

func (h *ExportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/export/transactions.csv",
		Summary:     "Export transactions",
		Description: "Downloads the transaction history as CSV, newest first.",
		Tags:        []string{"Transactions"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "CSV export",
				Content: map[string]*huma.MediaType{
					"text/csv": {},
				},
			},
		},
	}, h.handle)
}

func (h *ExportTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ExportTransactionsOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	// Buffered so a storage error still produces a proper error response.
	var buf bytes.Buffer
	if err := h.TransactionService.WriteCSV(ctx, userID, &buf); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to export transactions", err)
	}

	return &ExportTransactionsOutput{
		ContentType:        "text/csv",
		ContentDisposition: `attachment; filename="transactions.csv"`,
		Body:               buf.Bytes(),
	}, nil
}
