package presentation

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed web
var webFS embed.FS

// MountStatic отдаёт форму заказа (/) и страницу выгрузки (/admin/).
func MountStatic(r chi.Router) {
	sub, _ := fs.Sub(webFS, "web")

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, sub, "index.html")
	})
	r.Mount("/", http.FileServer(http.FS(sub)))
}
