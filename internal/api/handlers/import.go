package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/sinja33/RouteOptimize/internal/api/dto"
	"github.com/sinja33/RouteOptimize/internal/importer"
	"github.com/sinja33/RouteOptimize/internal/platform/obs"
)

type ImportHandler struct {
	Importer *importer.OrderImporter
}

// Orders imports a CSV of delivery orders. The file arrives either as a
// multipart upload under the "file" field or as the raw request body. Rows
// that cannot be parsed or geocoded are reported individually; the rest of
// the batch goes through.
func (h *ImportHandler) Orders(w http.ResponseWriter, r *http.Request) {
	var err error
	defer obs.Time(r.Context(), "import_orders")(&err)

	body, closeBody, berr := importBody(r)
	if berr != nil {
		writeError(w, r, http.StatusBadRequest, berr.Error())
		return
	}
	defer closeBody()

	res, impErr := h.Importer.ImportOrders(r.Context(), body)
	if impErr != nil {
		err = impErr
		if errors.Is(impErr, importer.ErrNoLocationColumns) {
			writeError(w, r, http.StatusBadRequest, impErr.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid CSV input")
		return
	}

	resp := dto.ImportOrdersResponse{
		Orders:   make([]dto.OrderRequest, len(res.Orders)),
		Imported: len(res.Orders),
	}
	for i, o := range res.Orders {
		resp.Orders[i] = dto.FromOrder(o)
	}
	for _, rej := range res.Rejected {
		resp.Rejected = append(resp.Rejected, dto.RejectedRow{Line: rej.Line, Reason: rej.Reason})
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// importBody picks the CSV stream out of the request.
func importBody(r *http.Request) (io.Reader, func(), error) {
	ct := r.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(ct)
	if strings.HasPrefix(mediaType, "multipart/") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil, errors.New("missing multipart file field")
		}
		return f, func() { f.Close() }, nil
	}
	return io.LimitReader(r.Body, maxBodyBytes), func() {}, nil
}
