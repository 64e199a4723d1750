package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/finops-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

func writeInternalError(w http.ResponseWriter, message string) {
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}
