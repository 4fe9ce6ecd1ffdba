package echo

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/application/imam"
)

// ImamService is the use-case surface the imam handler depends on.
type ImamService interface {
	Register(ctx context.Context, fields map[string]any) (imam.View, error)
	Get(ctx context.Context, id, faithfulID string) (imam.View, error)
	List(ctx context.Context, filters map[string]string) ([]imam.View, error)
	Update(ctx context.Context, id string, fields map[string]any) (imam.View, error)
	Delete(ctx context.Context, id string) error
	Reassign(ctx context.Context, id, newMosque, reason, movedBy string) (imam.View, error)
}

type ImamHandler struct {
	svc ImamService
}

func NewImamHandler(svc ImamService) *ImamHandler {
	return &ImamHandler{svc: svc}
}

type certificationResponse struct {
	Idx               int    `json:"idx"`
	CertificationName string `json:"certification_name"`
	IssuingBody       string `json:"issuing_body,omitempty"`
	DateAwarded       string `json:"date_awarded,omitempty"`
	Attachment        string `json:"attachment,omitempty"`
}

type assignmentLogResponse struct {
	OldMosque string `json:"old_mosque,omitempty"`
	NewMosque string `json:"new_mosque"`
	Reason    string `json:"reason,omitempty"`
	MovedBy   string `json:"moved_by,omitempty"`
	MovedAt   string `json:"moved_at,omitempty"`
}

type imamResponse struct {
	ID                string                  `json:"id"`
	Faithful          string                  `json:"faithful"`
	ImamName          string                  `json:"imam_name,omitempty"`
	MosqueAssigned    string                  `json:"mosque_assigned"`
	MosqueName        string                  `json:"mosque_name,omitempty"`
	DateAppointed     string                  `json:"date_appointed"`
	YearsOfExperience int                     `json:"years_of_experience"`
	RoleInMosque      string                  `json:"role_in_mosque,omitempty"`
	Status            string                  `json:"status,omitempty"`
	DateOfBirth       string                  `json:"date_of_birth,omitempty"`
	PlaceOfBirth      string                  `json:"place_of_birth,omitempty"`
	Gender            string                  `json:"gender,omitempty"`
	MaritalStatus     string                  `json:"marital_status,omitempty"`
	Phone             string                  `json:"phone,omitempty"`
	Email             string                  `json:"email,omitempty"`
	ProfileImage      string                  `json:"profile_image,omitempty"`
	NationalIDNumber  string                  `json:"national_id_number,omitempty"`
	SpecialNeedsProof string                  `json:"special_needs_proof,omitempty"`
	Certifications    []certificationResponse `json:"certifications"`
	AssignmentLogs    []assignmentLogResponse `json:"assignment_logs"`
	CreatedAt         string                  `json:"created_at,omitempty"`
	UpdatedAt         string                  `json:"updated_at,omitempty"`
}

func (h *ImamHandler) Register(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.svc.Register(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "imam created", toImamResponse(created))
}

func (h *ImamHandler) Get(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), c.Param("id"), "")
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "imam", toImamResponse(v))
}

// List returns all imams matching the query filters. A "faithful" query
// parameter switches to a single lookup by profile id.
func (h *ImamHandler) List(c echo.Context) error {
	if faithfulID := c.QueryParam("faithful"); faithfulID != "" {
		v, err := h.svc.Get(c.Request().Context(), "", faithfulID)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, http.StatusOK, "imam", toImamResponse(v))
	}

	filters := map[string]string{
		"mosque_assigned": c.QueryParam("mosque_assigned"),
		"status":          c.QueryParam("status"),
		"role_in_mosque":  c.QueryParam("role_in_mosque"),
	}

	views, err := h.svc.List(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]imamResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toImamResponse(v))
	}
	return respond(c, http.StatusOK, "imams", out)
}

func (h *ImamHandler) Update(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "imam updated", toImamResponse(updated))
}

func (h *ImamHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "imam deleted", map[string]string{"id": id})
}

func (h *ImamHandler) Reassign(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	newMosque, _ := fields["new_mosque"].(string)
	reason, _ := fields["reason"].(string)
	movedBy, _ := fields["moved_by"].(string)

	updated, err := h.svc.Reassign(c.Request().Context(), c.Param("id"), newMosque, reason, movedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "imam reassigned", toImamResponse(updated))
}

func toImamResponse(v imam.View) imamResponse {
	out := imamResponse{
		ID:                v.ID,
		Faithful:          v.Faithful,
		ImamName:          v.ImamName,
		MosqueAssigned:    v.MosqueAssigned,
		MosqueName:        v.MosqueName,
		DateAppointed:     v.DateAppointed,
		YearsOfExperience: v.YearsOfExperience,
		RoleInMosque:      v.RoleInMosque,
		Status:            v.Status,
		DateOfBirth:       v.DateOfBirth,
		PlaceOfBirth:      v.PlaceOfBirth,
		Gender:            v.Gender,
		MaritalStatus:     v.MaritalStatus,
		Phone:             v.Phone,
		Email:             v.Email,
		ProfileImage:      v.ProfileImage,
		NationalIDNumber:  v.NationalIDNumber,
		SpecialNeedsProof: v.SpecialNeedsProof,
		Certifications:    []certificationResponse{},
		AssignmentLogs:    []assignmentLogResponse{},
		CreatedAt:         formatTime(v.CreatedAt),
		UpdatedAt:         formatTime(v.UpdatedAt),
	}
	for _, cert := range v.Certifications {
		out.Certifications = append(out.Certifications, certificationResponse{
			Idx:               cert.Idx,
			CertificationName: cert.CertificationName,
			IssuingBody:       cert.IssuingBody,
			DateAwarded:       cert.DateAwarded,
			Attachment:        cert.Attachment,
		})
	}
	for _, log := range v.AssignmentLogs {
		out.AssignmentLogs = append(out.AssignmentLogs, assignmentLogResponse{
			OldMosque: log.OldMosque,
			NewMosque: log.NewMosque,
			Reason:    log.Reason,
			MovedBy:   log.MovedBy,
			MovedAt:   formatTime(log.MovedAt),
		})
	}
	return out
}
