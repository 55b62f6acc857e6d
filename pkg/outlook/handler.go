package outlook

import (
	"encoding/json"
	"net/http"
)

type FolderDTO struct {
	EntryID   string `json:"entryId"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	ItemCount int    `json:"itemCount"`
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client}
}

func (h *Handler) GetCalendars(w http.ResponseWriter, r *http.Request) {
	folders, err := h.client.Folders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]FolderDTO, 0, len(folders))
	for _, folder := range folders {
		dtos = append(dtos, folderToDTO(folder))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func folderToDTO(folder Folder) FolderDTO {
	return FolderDTO{
		EntryID:   folder.EntryID,
		Name:      folder.Name,
		IsDefault: folder.IsDefault,
		ItemCount: folder.ItemCount,
	}
}
