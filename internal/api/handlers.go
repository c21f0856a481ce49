package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/skill"
)

// healthResponse is the payload of GET /api/v1/health.
type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database,omitempty"`
}

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Version: s.version,
	}

	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			s.logger.Error("database health check failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSkill processes one inbound voice-platform event.
//
// The request body is the platform's JSON envelope; the response is the
// rendered speechlet. Events from an unrecognised application are
// rejected with 401, unknown intents with 400.
func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	var event skill.RequestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeBadRequest(w, "malformed request envelope")
		return
	}

	resp, err := s.skill.Handle(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrInvalidApplication):
			writeUnauthorized(w, "invalid application ID")
		case errors.Is(err, skill.ErrUnknownIntent):
			writeBadRequest(w, err.Error())
		default:
			s.logger.Error("skill event handling failed", "error", err)
			writeInternalError(w, "failed to handle event")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// groupsResponse is the payload of GET /api/v1/groups.
type groupsResponse struct {
	Groups []group.Group `json:"groups"`
	Count  int           `json:"count"`
}

// handleListGroups returns every stored device group.
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ScanGroups(r.Context())
	if err != nil {
		s.logger.Error("group scan failed", "error", err)
		writeInternalError(w, "failed to list groups")
		return
	}

	writeJSON(w, http.StatusOK, groupsResponse{
		Groups: groups,
		Count:  len(groups),
	})
}

// membershipsResponse is the payload of GET /api/v1/groups/memberships.
type membershipsResponse struct {
	Memberships []group.Membership `json:"memberships"`
	Count       int                `json:"count"`
}

// handleListMemberships returns every device-to-group assignment.
func (s *Server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := s.groups.ScanMemberships(r.Context())
	if err != nil {
		s.logger.Error("membership scan failed", "error", err)
		writeInternalError(w, "failed to list memberships")
		return
	}

	writeJSON(w, http.StatusOK, membershipsResponse{
		Memberships: memberships,
		Count:       len(memberships),
	})
}
