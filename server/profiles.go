package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/backview/store"
)

func profileID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("profile id must be an integer")
	}
	return id, nil
}

func (s *Server) listProfiles(c *gin.Context) {
	profiles, err := s.store.ListProfiles(c.Request.Context())
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (s *Server) createProfile(c *gin.Context) {
	var p store.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.store.CreateProfile(c.Request.Context(), &p); err != nil {
		s.failStore(c, err)
		return
	}
	s.log.Info("profile created", "id", p.ID, "name", p.Name)
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProfile(c *gin.Context) {
	id, err := profileID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	p, err := s.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updateProfile(c *gin.Context) {
	id, err := profileID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	var p store.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.store.UpdateProfile(c.Request.Context(), &p); err != nil {
		s.failStore(c, err)
		return
	}

	// Reload so the response carries created_at and order_index.
	updated, err := s.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteProfile(c *gin.Context) {
	id, err := profileID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteProfile(c.Request.Context(), id); err != nil {
		s.failStore(c, err)
		return
	}
	s.log.Info("profile deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) reorderProfiles(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if len(req.IDs) == 0 {
		s.fail(c, http.StatusBadRequest, errors.New("ids must not be empty"))
		return
	}
	if err := s.store.ReorderProfiles(c.Request.Context(), req.IDs); err != nil {
		s.failStore(c, err)
		return
	}

	profiles, err := s.store.ListProfiles(c.Request.Context())
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
