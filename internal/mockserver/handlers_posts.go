package mockserver

import (
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single media upload (32 MiB).
const maxUploadBytes = 32 << 20

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	posts := s.store.Posts()
	out := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		email := "unknown"
		if owner, err := s.store.UserByID(p.UserID); err == nil {
			email = owner.Email
		}
		out = append(out, map[string]any{
			"id":         p.ID.String(),
			"user_id":    p.UserID.String(),
			"caption":    p.Caption,
			"url":        p.URL,
			"file_type":  p.FileType,
			"file_name":  p.FileName,
			"created_at": p.CreatedAt.Format(time.RFC3339Nano),
			"is_owner":   p.UserID == user.ID,
			"email":      email,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": out})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "reading upload failed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	post := &Post{
		ID:        uuid.New(),
		UserID:    user.ID,
		Caption:   r.FormValue("caption"),
		FileType:  fileTypeFor(contentType, header.Filename),
		FileName:  header.Filename,
		CreatedAt: time.Now().UTC(),
	}
	post.URL = "/media/" + post.ID.String()
	s.store.AddPost(post, data, contentType)

	s.log.Info(r.Context(), "media uploaded", "post", post.ID, "user", user.Email, "bytes", len(data))
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         post.ID.String(),
		"user_id":    post.UserID.String(),
		"caption":    post.Caption,
		"url":        post.URL,
		"file_type":  post.FileType,
		"file_name":  post.FileName,
		"created_at": post.CreatedAt.Format(time.RFC3339Nano),
	})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := s.store.PostByID(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != user.ID {
		writeDetail(w, http.StatusForbidden, "You do not have permission to delete this post")
		return
	}

	s.store.DeletePost(id)
	s.log.Info(r.Context(), "post deleted", "post", id, "user", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Post deleted successfully"})
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}

	data, contentType, err := s.store.File(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func fileTypeFor(contentType, fileName string) string {
	if strings.HasPrefix(contentType, "video/") {
		return "video"
	}
	switch strings.ToLower(path.Ext(fileName)) {
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return "video"
	}
	return "image"
}
