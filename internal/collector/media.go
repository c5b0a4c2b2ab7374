package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kostyay/basementhq/internal/model"
)

// Media counts active playback sessions on a Jellyfin-compatible server.
type Media struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewMedia returns a media collector. An empty apiKey makes every poll
// report "no key" without contacting the server.
func NewMedia(baseURL, apiKey string, client *http.Client) *Media {
	if client == nil {
		client = &http.Client{Timeout: model.SourceMedia.Timeout()}
	}
	return &Media{baseURL: baseURL, apiKey: apiKey, client: client}
}

// ID implements Source.
func (m *Media) ID() model.SourceID { return model.SourceMedia }

// Poll implements Source.
func (m *Media) Poll(ctx context.Context) model.Report {
	return m.Collect(ctx).Report(m.ID())
}

type mediaSession struct {
	UserName       string `json:"UserName"`
	Client         string `json:"Client"`
	DeviceName     string `json:"DeviceName"`
	NowPlayingItem *struct {
		Name       string `json:"Name"`
		SeriesName string `json:"SeriesName"`
	} `json:"NowPlayingItem"`
}

// Collect queries /Sessions.
func (m *Media) Collect(ctx context.Context) model.Result[model.MediaSessions] {
	if m.apiKey == "" {
		return model.Degraded("no key", model.MediaSessions{})
	}

	req, err := newGet(ctx, joinURL(m.baseURL, "/Sessions"))
	if err != nil {
		return model.Unavailable[model.MediaSessions](err.Error())
	}
	req.Header.Set("X-Emby-Token", m.apiKey)

	var sessions []mediaSession
	res := fetchJSON(m.client, req, &sessions)
	switch res.kind {
	case fetchTransport:
		return model.Unavailable[model.MediaSessions](transportReason(res.err))
	case fetchStatus:
		if res.code == http.StatusUnauthorized || res.code == http.StatusForbidden {
			return model.Degraded("auth error", model.MediaSessions{})
		}
		return model.Degraded(fmt.Sprintf("error %d", res.code), model.MediaSessions{})
	case fetchDecode:
		return model.Degraded("bad response", model.MediaSessions{})
	}

	return model.OK(summarizeSessions(sessions))
}

func summarizeSessions(sessions []mediaSession) model.MediaSessions {
	var out model.MediaSessions
	for _, s := range sessions {
		if s.NowPlayingItem == nil {
			continue
		}
		title := s.NowPlayingItem.Name
		if s.NowPlayingItem.SeriesName != "" {
			title = s.NowPlayingItem.SeriesName + " - " + title
		}
		client := s.Client
		if client == "" {
			client = s.DeviceName
		}
		out.Streams = append(out.Streams, model.MediaStream{User: s.UserName, Title: title, Client: client})
	}
	out.ActiveStreams = len(out.Streams)

	switch out.ActiveStreams {
	case 0:
		out.Summary = "idle"
	case 1:
		out.Summary = "1 stream"
	default:
		out.Summary = fmt.Sprintf("%d streams", out.ActiveStreams)
	}
	if out.ActiveStreams > 0 {
		users := make([]string, 0, len(out.Streams))
		for _, s := range out.Streams {
			if s.User != "" {
				users = append(users, s.User)
			}
		}
		if len(users) > 0 {
			out.Summary += ": " + strings.Join(users, ", ")
		}
	}
	return out
}
