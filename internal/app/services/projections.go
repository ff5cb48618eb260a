package services

import (
	"context"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

func newAuthorResponse(user *models.User) *dto.AuthorResponse {
	if user == nil {
		return nil
	}
	return &dto.AuthorResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		ProfileImage: user.ProfileImage,
	}
}

func newUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		UserType:     string(user.Role),
		Status:       string(user.Status),
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// storeMediaFiles persists inline uploads and returns their generated ids
// in upload order. Payloads may arrive as full data URIs or as a bare
// base64 body with an explicit MIME type.
func storeMediaFiles(ctx context.Context, store mediastore.Store, files []dto.MediaFileUpload) ([]string, error) {
	ids := make([]string, 0, len(files))
	for _, file := range files {
		dataType, payload := file.Type, file.Data
		if parsedType, parsedPayload, err := mediastore.ParseDataURI(file.Data); err == nil {
			dataType, payload = parsedType, parsedPayload
		}
		if dataType == "" || payload == "" {
			return nil, apperrors.NewBadRequestError("media file requires a type and a base64 payload")
		}

		rec := mediastore.Record{
			MediaID:    mediastore.NewMediaID(),
			DataType:   dataType,
			Base64Data: payload,
		}
		if err := store.Put(ctx, rec); err != nil {
			return nil, err
		}
		ids = append(ids, rec.MediaID)
	}
	return ids, nil
}

// resolveMediaBatch fetches the payloads for a set of per-item media id
// lists in one round trip and renders each item's data URIs in order.
// Ids with no stored payload are dropped rather than failing the page.
func resolveMediaBatch(ctx context.Context, store mediastore.Store, idsByItem map[int64][]string) (map[int64][]string, error) {
	var allIDs []string
	for _, ids := range idsByItem {
		allIDs = append(allIDs, ids...)
	}

	recs, err := store.GetBatch(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	urls := make(map[int64][]string, len(idsByItem))
	for itemID, ids := range idsByItem {
		urls[itemID] = renderMediaURLs(recs, ids)
	}
	return urls, nil
}

func renderMediaURLs(recs map[string]mediastore.Record, ids []string) []string {
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		if rec, ok := recs[id]; ok {
			urls = append(urls, mediastore.FormatDataURI(rec.DataType, rec.Base64Data))
		}
	}
	return urls
}
