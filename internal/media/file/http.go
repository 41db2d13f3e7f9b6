package file

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/constants"
	"github.com/minhngo/travia/internal/platform/middleware"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Editor Only: the media library is a CMS surface.
	router.Use(middleware.RequireRole(sec.RoleEditor))

	router.Get("/", handler.listFiles)
	router.Get("/{id}", handler.getFile)
	router.Get("/{id}/download", handler.downloadFile)
	router.Post("/upload", handler.uploadFile)
	router.Put("/{id}", handler.moveFile)
	router.Delete("/{id}", handler.deleteFile)
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid file ID")
	}
	return id, nil
}

func (handler *Handler) listFiles(writer http.ResponseWriter, request *http.Request) {
	var folderID *int
	if raw := request.URL.Query().Get("folder_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Invalid folder ID"))
			return
		}
		folderID = &parsed
	}

	files, err := handler.service.List(request.Context(), folderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, files)
}

func (handler *Handler) getFile(writer http.ResponseWriter, request *http.Request) {
	fileID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.service.Get(request.Context(), fileID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

func (handler *Handler) uploadFile(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart upload"))
		return
	}

	upload, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing file field"))
		return
	}
	defer upload.Close()

	var folderID *int
	if raw := request.FormValue("folder_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Invalid folder ID"))
			return
		}
		folderID = &parsed
	}

	file, err := handler.service.Upload(request.Context(),
		header.Filename, header.Header.Get("Content-Type"), header.Size, upload, folderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, file)
}

func (handler *Handler) moveFile(writer http.ResponseWriter, request *http.Request) {
	fileID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		FolderID *int `json:"folder_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.service.Move(request.Context(), fileID, input.FolderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

func (handler *Handler) downloadFile(writer http.ResponseWriter, request *http.Request) {
	fileID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, content, err := handler.service.Download(request.Context(), fileID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer content.Close()

	writer.Header().Set("Content-Type", file.ContentType)
	writer.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	writer.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	_, _ = io.Copy(writer, content)
}

func (handler *Handler) deleteFile(writer http.ResponseWriter, request *http.Request) {
	fileID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), fileID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
