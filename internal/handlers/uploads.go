package handlers

import (
	"errors"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/domain/profile"
	"sewalink/backend/internal/httpjson"
	"sewalink/backend/internal/objects"
)

// imageTypes are the content types accepted for avatar and cover uploads.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Uploads struct {
	bucket   *objects.Bucket
	profiles *profile.Repo
}

func NewUploads(bucket *objects.Bucket, profiles *profile.Repo) *Uploads {
	return &Uploads{bucket: bucket, profiles: profiles}
}

type signedURLReq struct {
	ContentType    string `json:"contentType"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"` // default 900
}

type signedURLResp struct {
	URL         string `json:"url"`
	Method      string `json:"method"`
	ExpiresAt   int64  `json:"expiresAt"`
	ObjectPath  string `json:"objectPath"`
	DownloadURL string `json:"downloadURL"`
}

// CreateSignedUploadURL hands out a PUT URL for a new avatar or cover image
// under users/{uid}/{kind}/.
func (h *Uploads) CreateSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	uid, _ := authctx.UID(r.Context())
	kind := chi.URLParam(r, "kind")
	if _, ok := profile.PhotoField(kind); !ok {
		httpjson.Error(w, http.StatusBadRequest, "kind must be avatar or cover")
		return
	}

	var req signedURLReq
	if err := httpjson.Read(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	ext, ok := imageTypes[strings.ToLower(strings.TrimSpace(req.ContentType))]
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "contentType must be a jpeg, png, webp or gif image")
		return
	}

	objectPath := path.Join("users", uid, kind, uuid.NewString()+ext)
	url, exp, err := h.bucket.SignedUploadURL(r.Context(), objectPath, req.ContentType, time.Duration(req.ExpiresSeconds)*time.Second)
	if err != nil {
		if errors.Is(err, objects.ErrNotConfigured) {
			httpjson.Error(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Printf("[uploads] sign %s: %v", objectPath, err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to create upload url")
		return
	}

	httpjson.Write(w, http.StatusOK, signedURLResp{
		URL:         url,
		Method:      "PUT",
		ExpiresAt:   exp.Unix(),
		ObjectPath:  objectPath,
		DownloadURL: h.bucket.DownloadURL(objectPath),
	})
}

type setPhotoReq struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

func (in *setPhotoReq) Trim() {
	in.Kind = strings.TrimSpace(in.Kind)
	in.URL = strings.TrimSpace(in.URL)
}

// SetPhoto points the caller's avatar or cover at an uploaded image and
// removes the image it replaces.
func (h *Uploads) SetPhoto(w http.ResponseWriter, r *http.Request) {
	uid, _ := authctx.UID(r.Context())

	var req setPhotoReq
	if err := httpjson.Read(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Trim()

	if _, ok := profile.PhotoField(req.Kind); !ok {
		httpjson.Error(w, http.StatusBadRequest, "kind must be avatar or cover")
		return
	}
	objectPath, err := h.bucket.OwnedUpload(uid, req.Kind, req.URL)
	if err != nil {
		if errors.Is(err, objects.ErrNotConfigured) {
			httpjson.Error(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		httpjson.Error(w, http.StatusBadRequest, "url must point at one of your "+req.Kind+" uploads")
		return
	}
	photoURL := h.bucket.DownloadURL(objectPath)

	prev, err := h.profiles.Get(r.Context(), uid)
	if err != nil && !profile.IsErrNotFound(err) {
		log.Printf("[uploads] read profile %s: %v", uid, err)
	}

	if err := h.profiles.SetPhoto(r.Context(), uid, req.Kind, photoURL); err != nil {
		if profile.IsErrBadRequest(err) {
			httpjson.Error(w, http.StatusBadRequest, "kind must be avatar or cover")
			return
		}
		log.Printf("[uploads] set photo %s: %v", uid, err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to update profile photo")
		return
	}

	if prev != nil {
		old := prev.PhotoURL
		if req.Kind == "cover" {
			old = prev.CoverPhoto
		}
		if old != "" && old != photoURL {
			if _, err := h.bucket.RemoveOwned(r.Context(), uid, old); err != nil {
				log.Printf("[uploads] remove old %s of %s: %v", req.Kind, uid, err)
			}
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"ok": true, "kind": req.Kind, "url": photoURL})
}
