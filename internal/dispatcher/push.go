package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/config"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/sirupsen/logrus"
)

type pushSender struct {
	cfg  *config.PushConfig
	http *http.Client
}

func NewPushSender(cfg *config.PushConfig, client *http.Client) PushSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &pushSender{cfg: cfg, http: client}
}

func (s *pushSender) Send(ctx context.Context, req *PushRequest) error {
	if s.cfg.URL == "" {
		return entity.ErrPushNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("push provider call failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	logrus.WithFields(logrus.Fields{
		"title":      req.Title,
		"recipients": len(req.UserIDs),
		"equipe_id":  req.EquipeID,
	}).Info("Push notification delivered")

	return nil
}
