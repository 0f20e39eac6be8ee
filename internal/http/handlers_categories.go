package http

import (
	"net/http"

	"ekspence/internal/state"
)

type categoryRequest struct {
	Name string `json:"name"`
}

type renameCategoryRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Snapshot().Categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	list := state.CategoryList(r.PathValue("list"))
	if err := list.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.AddCategory(r.Context(), list, sanitizeInput(req.Name)); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, s.app.Snapshot().Categories)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	list := state.CategoryList(r.PathValue("list"))
	if err := list.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req renameCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.RenameCategory(r.Context(), list, req.OldName, sanitizeInput(req.NewName)); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, s.app.Snapshot().Categories)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	list := state.CategoryList(r.PathValue("list"))
	if err := list.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.RemoveCategory(r.Context(), list, r.PathValue("name")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
