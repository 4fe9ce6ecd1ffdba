package imam

import (
	"context"
	"fmt"
	"time"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// Repository is the persistence port for imam CRUD.
type Repository interface {
	Create(ctx context.Context, i registry.Imam) (registry.Imam, error)
	Get(ctx context.Context, id string) (registry.Imam, error)
	GetByFaithful(ctx context.Context, faithfulID string) (registry.Imam, error)
	List(ctx context.Context, filters map[string]string) ([]registry.Imam, error)
	Update(ctx context.Context, i registry.Imam) (registry.Imam, error)
	Delete(ctx context.Context, id string) error
	AppendAssignmentLog(ctx context.Context, imamID string, log registry.AssignmentLog) error
}

// ProfileLookup resolves the faithful profile an imam record points at.
type ProfileLookup interface {
	Get(ctx context.Context, id string) (registry.Faithful, error)
}

// MosqueLookup resolves a mosque's display name.
type MosqueLookup interface {
	DisplayName(ctx context.Context, id string) (string, error)
}

// AttachmentSaver decodes and stores a base64 data URL, returning the URL of
// the stored file.
type AttachmentSaver interface {
	SaveDataURL(ctx context.Context, dataURL, prefix string) (string, error)
}

// View is an imam record joined with its profile and mosque display fields,
// the shape both list and single reads return.
type View struct {
	registry.Imam
	ImamName          string
	DateOfBirth       string
	PlaceOfBirth      string
	Gender            string
	MaritalStatus     string
	Phone             string
	Email             string
	ProfileImage      string
	NationalIDNumber  string
	SpecialNeedsProof string
	MosqueName        string
}

type Service struct {
	repo        Repository
	profiles    ProfileLookup
	mosques     MosqueLookup
	attachments AttachmentSaver
	now         func() time.Time
}

func NewService(repo Repository, profiles ProfileLookup, mosques MosqueLookup, attachments AttachmentSaver) *Service {
	return &Service{
		repo:        repo,
		profiles:    profiles,
		mosques:     mosques,
		attachments: attachments,
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, fields map[string]any) (View, error) {
	var i registry.Imam
	if err := i.ApplyFields(fields); err != nil {
		return View{}, err
	}
	if err := i.Validate(); err != nil {
		return View{}, err
	}
	created, err := s.repo.Create(ctx, i)
	if err != nil {
		return View{}, err
	}
	return s.enrich(ctx, created), nil
}

// Get resolves an imam by record id or by faithful profile id.
func (s *Service) Get(ctx context.Context, id, faithfulID string) (View, error) {
	if id == "" && faithfulID == "" {
		return View{}, registry.Validationf("provide 'id' or 'faithful'")
	}

	var (
		i   registry.Imam
		err error
	)
	if id != "" {
		i, err = s.repo.Get(ctx, id)
	} else {
		i, err = s.repo.GetByFaithful(ctx, faithfulID)
	}
	if err != nil {
		return View{}, err
	}
	return s.enrich(ctx, i), nil
}

func (s *Service) List(ctx context.Context, filters map[string]string) ([]View, error) {
	records, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(records))
	for _, i := range records {
		views = append(views, s.enrich(ctx, i))
	}
	return views, nil
}

// Update merges the payload over the stored record. A "certifications" list
// replaces the existing child rows wholesale; attachments arriving as base64
// data URLs are decoded and stored first.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (View, error) {
	if id == "" {
		return View{}, registry.Validationf("missing 'id' for update")
	}
	i, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	if raw, ok := fields["certifications"]; ok {
		delete(fields, "certifications")
		certs, err := s.decodeCertifications(ctx, id, raw)
		if err != nil {
			return View{}, err
		}
		i.Certifications = certs
	}

	if err := i.ApplyFields(fields); err != nil {
		return View{}, err
	}
	if err := i.Validate(); err != nil {
		return View{}, err
	}

	updated, err := s.repo.Update(ctx, i)
	if err != nil {
		return View{}, err
	}
	return s.enrich(ctx, updated), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return registry.Validationf("provide 'id' to delete")
	}
	return s.repo.Delete(ctx, id)
}

// Reassign moves an imam to a new mosque and records the move in the
// assignment log.
func (s *Service) Reassign(ctx context.Context, id, newMosque, reason, movedBy string) (View, error) {
	if id == "" || newMosque == "" {
		return View{}, registry.Validationf("missing 'id' or 'new_mosque'")
	}

	i, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	old := i.MosqueAssigned
	i.MosqueAssigned = newMosque
	updated, err := s.repo.Update(ctx, i)
	if err != nil {
		return View{}, err
	}

	if err := s.repo.AppendAssignmentLog(ctx, id, registry.AssignmentLog{
		OldMosque: old,
		NewMosque: newMosque,
		Reason:    reason,
		MovedBy:   movedBy,
		MovedAt:   s.now(),
	}); err != nil {
		return View{}, err
	}

	return s.enrich(ctx, updated), nil
}

func (s *Service) decodeCertifications(ctx context.Context, imamID string, raw any) ([]registry.Certification, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, registry.Validationf("'certifications' must be a list")
	}

	certs := make([]registry.Certification, 0, len(list))
	for idx, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, registry.Validationf("certification %d must be an object", idx+1)
		}

		cert := registry.Certification{Idx: idx + 1}
		cert.CertificationName, _ = entry["certification_name"].(string)
		cert.IssuingBody, _ = entry["issuing_body"].(string)
		cert.DateAwarded, _ = entry["date_awarded"].(string)

		attachment, _ := entry["attachment"].(string)
		if attachment != "" && len(attachment) > 5 && attachment[:5] == "data:" {
			url, err := s.attachments.SaveDataURL(ctx, attachment, fmt.Sprintf("imam_cert_%s", imamID))
			if err != nil {
				return nil, err
			}
			attachment = url
		}
		cert.Attachment = attachment

		certs = append(certs, cert)
	}
	return certs, nil
}

// enrich joins profile and mosque display fields onto the record. Lookups
// that miss leave their fields blank, matching how exports tolerate dangling
// references.
func (s *Service) enrich(ctx context.Context, i registry.Imam) View {
	v := View{Imam: i}

	if prof, err := s.profiles.Get(ctx, i.Faithful); err == nil {
		v.ImamName = prof.FullName
		v.DateOfBirth = prof.DateOfBirth
		v.PlaceOfBirth = prof.PlaceOfBirth
		v.Gender = prof.Gender
		v.MaritalStatus = prof.MaritalStatus
		v.Phone = prof.Phone
		v.Email = prof.Email
		v.ProfileImage = prof.ProfileImage
		v.NationalIDNumber = prof.NationalIDNumber
		v.SpecialNeedsProof = prof.SpecialNeedsProof
	}

	if i.MosqueAssigned != "" {
		if name, err := s.mosques.DisplayName(ctx, i.MosqueAssigned); err == nil && name != "" {
			v.MosqueName = name
		} else {
			v.MosqueName = i.MosqueAssigned
		}
	}

	return v
}
