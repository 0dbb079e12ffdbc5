package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// PathUUID разбирает uuid из переменной пути mux
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("path variable %q is missing", name)
	}
	return uuid.Parse(raw)
}

// PathVar значение переменной пути mux
func PathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
