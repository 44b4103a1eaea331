package server

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/signature"
	"github.com/Sunkar2710/sigkit/internal/splitter"
)

type parseRequest struct {
	Signature string `json:"signature"`
}

type batchRequest struct {
	Signatures []string `json:"signatures"`
}

type batchItem struct {
	Signature *signature.MethodSignature `json:"signature,omitempty"`
	Error     *errorBody                 `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

type splitRequest struct {
	Source     string   `json:"source"`
	Delimiters []string `json:"delimiters"`
}

type splitResponse struct {
	Tokens []string `json:"tokens"`
}

type errorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Field       string   `json:"field,omitempty"`
	Argument    int      `json:"argument,omitempty"`
	Column      int      `json:"column,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type errorResponse struct {
	Error *errorBody `json:"error"`
}

func (s *Server) health(c echo.Context) error {
	body := map[string]interface{}{"status": "ok"}
	if cached, ok := s.engine.(*signature.CachedEngine); ok {
		body["cache"] = cached.Stats()
	}
	return c.JSON(http.StatusOK, body)
}

func (s *Server) parseSignature(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	result, err := s.engine.Parse(req.Signature)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: toErrorBody(err)})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) parseBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if len(req.Signatures) > s.cfg.MaxBatch {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("batch of %d signatures exceeds the limit of %d", len(req.Signatures), s.cfg.MaxBatch))
	}

	resp := batchResponse{Results: make([]batchItem, 0, len(req.Signatures))}
	for _, sig := range req.Signatures {
		result, err := s.engine.Parse(sig)
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, batchItem{Error: toErrorBody(err)})
			continue
		}
		resp.Succeeded++
		resp.Results = append(resp.Results, batchItem{Signature: result})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) split(c echo.Context) error {
	var req splitRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, splitResponse{Tokens: splitter.Split(req.Source, req.Delimiters)})
}

func toErrorBody(err error) *errorBody {
	body := &errorBody{
		Code:    errors.UnknownErrorCode.String(),
		Message: err.Error(),
	}

	var coded errors.CodedError
	if stderrors.As(err, &coded) {
		body.Code = coded.ErrorCode().String()
		body.Column = coded.Location().Column
		body.Suggestions = coded.Suggestions()
	}

	var perr *signature.ParseError
	if stderrors.As(err, &perr) {
		body.Field = perr.Field
		body.Argument = perr.Argument
	}
	return body
}
