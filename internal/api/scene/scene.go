package scene

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mini_casino/internal/converter"
	"mini_casino/internal/service"
	"mini_casino/internal/texture"
	"mini_casino/pkg/resp"
)

type HandlerDeps struct {
	Serv     service.SceneService
	Textures *texture.Cache
	Log      *zap.Logger
}

type Handler struct {
	serv     service.SceneService
	textures *texture.Cache
	log      *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:     deps.Serv,
		textures: deps.Textures,
		log:      deps.Log.Named("api.scene"),
	}
}

func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSceneResponse(h.serv.Snapshot()))
}

// Texture GET /textures/{label}.png
func (h *Handler) Texture(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	if label == converter.BlankLabel {
		label = ""
	} else if label == "" || !texture.IsFaceLabel(label) {
		resp.WriteJSONError(w, http.StatusNotFound, "unknown texture")
		return
	}

	b, err := h.textures.PNG(label)
	if err != nil {
		h.log.Error("render texture", zap.String("label", label), zap.Error(err))
		resp.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
