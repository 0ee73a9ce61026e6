package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eldercare-backend/internal/model"
	"eldercare-backend/internal/mw"
	"eldercare-backend/internal/store"
)

// pathID parses a path parameter into an id, writing a 400 when malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type createSeniorRequest struct {
	FullName              string     `json:"full_name" binding:"required"`
	Birthdate             *time.Time `json:"birthdate"`
	Conditions            string     `json:"conditions"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
}

// CreateSenior handles POST /api/seniors. The creator joins the care team
// as primary caregiver, or as SELF when a senior registers themselves.
func (h *Handler) CreateSenior(c *gin.Context) {
	var req createSeniorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actorID, _ := mw.UserID(c)

	senior := model.Senior{
		FullName:              req.FullName,
		Birthdate:             req.Birthdate,
		Conditions:            req.Conditions,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}

	role := model.MembershipPrimaryCaregiver
	if v, ok := c.Get(mw.CtxUserRole); ok && v == model.RoleSenior {
		role = model.MembershipSelf
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&senior).Error; err != nil {
			return err
		}
		member := model.CareTeamMember{
			SeniorID:       senior.ID,
			UserID:         actorID,
			MembershipRole: role,
			CanView:        true,
			CanEdit:        true,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create senior"})
		return
	}

	h.audit(actorID, "CREATE", "Senior", strconv.FormatInt(senior.ID, 10))
	c.JSON(http.StatusCreated, senior)
}

// GetSenior handles GET /api/seniors/:senior_id.
func (h *Handler) GetSenior(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	senior, err := h.store.GetSenior(c.Request.Context(), seniorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load senior"})
		return
	}
	c.JSON(http.StatusOK, senior)
}

type addCareTeamMemberRequest struct {
	UserID         int64                `json:"user_id" binding:"required"`
	MembershipRole model.MembershipRole `json:"membership_role" binding:"required"`
	CanView        *bool                `json:"can_view"`
	CanEdit        *bool                `json:"can_edit"`
}

// AddCareTeamMember handles POST /api/seniors/:senior_id/care-team.
func (h *Handler) AddCareTeamMember(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var req addCareTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.MembershipRole {
	case model.MembershipSelf, model.MembershipDoctor, model.MembershipNurse,
		model.MembershipCaregiver, model.MembershipPrimaryCaregiver, model.MembershipFamily:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown membership role"})
		return
	}

	member := model.CareTeamMember{
		SeniorID:       seniorID,
		UserID:         req.UserID,
		MembershipRole: req.MembershipRole,
		CanView:        true,
	}
	if req.CanView != nil {
		member.CanView = *req.CanView
	}
	if req.CanEdit != nil {
		member.CanEdit = *req.CanEdit
	}

	if err := h.store.DB().WithContext(c.Request.Context()).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already on the care team"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "CREATE", "CareTeamMember", strconv.FormatInt(member.ID, 10))
	c.JSON(http.StatusCreated, member)
}

// ListCareTeam handles GET /api/seniors/:senior_id/care-team.
func (h *Handler) ListCareTeam(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var members []model.CareTeamMember
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("senior_id = ?", seniorID).
		Order("id ASC").
		Find(&members).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list care team"})
		return
	}
	c.JSON(http.StatusOK, members)
}
