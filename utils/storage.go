package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"photodesk/models"
)

// SignedURLTTL is the validity window of generated photo URLs.
const SignedURLTTL = 3600 // seconds

// StorageClient talks to the hosted object storage service that holds the
// private photo objects and issues time-limited signed URLs for them.
type StorageClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewStorageClient(baseURL, bucket, serviceKey string, logger *logrus.Logger) *StorageClient {
	if baseURL != "" && !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	return &StorageClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignedURL asks the storage service for a time-limited URL for objectKey.
func (s *StorageClient) SignedURL(ctx context.Context, objectKey string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("storage service not configured")
	}

	payload, err := json.Marshal(signRequest{ExpiresIn: SignedURLTTL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s",
		s.baseURL, s.bucket, url.PathEscape(objectKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send sign request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read sign response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sign request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var signed signResponse
	if err := json.Unmarshal(respBody, &signed); err != nil {
		return "", fmt.Errorf("failed to parse sign response: %w", err)
	}
	if signed.SignedURL == "" {
		return "", fmt.Errorf("sign response contained no URL")
	}
	return s.baseURL + "/storage/v1" + signed.SignedURL, nil
}

// ResolveSignedURLs fills in SignedURL for each photo concurrently and waits
// for the whole batch. A failure for one photo leaves that photo's URL nil
// and never fails the batch; the view renders it as unavailable.
func (s *StorageClient) ResolveSignedURLs(ctx context.Context, photos []models.Photo) {
	var wg sync.WaitGroup
	for i := range photos {
		if photos[i].ObjectKey == nil || *photos[i].ObjectKey == "" {
			continue
		}
		wg.Add(1)
		go func(photo *models.Photo) {
			defer wg.Done()
			signedURL, err := s.SignedURL(ctx, *photo.ObjectKey)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"photo_id": photo.ID,
					"error":    err,
				}).Error("Failed to generate signed URL")
				return
			}
			photo.SignedURL = &signedURL
		}(&photos[i])
	}
	wg.Wait()
}
