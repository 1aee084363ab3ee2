package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/glowboard/internal/booking"
)

// SubmitTemplate validates the form and creates or updates a service template.
func (s *Service) SubmitTemplate(ctx context.Context, session TemplateSession, form TemplateForm) (*booking.Template, error) {
	in, err := form.parse(s.defaultColor)
	if err != nil {
		return nil, err
	}

	if session.IsNew() {
		t := &booking.Template{Name: in.name, Color: in.color, Price: in.price}
		if err := s.store.CreateTemplate(ctx, t); err != nil {
			return nil, fmt.Errorf("creating template: %w", err)
		}
		s.countSubmission("template", "create")
		return t, nil
	}

	updated, err := s.store.UpdateTemplate(ctx, session.TemplateID, booking.TemplatePatch{
		Name:  &in.name,
		Color: &in.color,
		Price: &in.price,
	})
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	s.countSubmission("template", "update")
	return updated, nil
}

// Templates returns every template in creation order.
func (s *Service) Templates(ctx context.Context) ([]*booking.Template, error) {
	return s.store.ListTemplates(ctx)
}

// Template returns a stored template.
func (s *Service) Template(ctx context.Context, id string) (*booking.Template, error) {
	return s.store.GetTemplate(ctx, id)
}

// DeleteTemplate removes a template. Events booked from it keep their values.
func (s *Service) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.DeleteTemplate(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	if ok {
		s.countSubmission("template", "delete")
	}
	return ok, nil
}

// Autofill returns the color and price to prefill when service names a template.
func (s *Service) Autofill(ctx context.Context, service string) (color, price string, ok bool, err error) {
	if strings.TrimSpace(service) == "" {
		return "", "", false, nil
	}
	t, err := s.store.FindTemplateByName(ctx, service)
	if err != nil {
		return "", "", false, fmt.Errorf("looking up template: %w", err)
	}
	if t == nil {
		return "", "", false, nil
	}
	color = t.Color
	if color == "" {
		color = booking.DefaultColor
	}
	return color, t.Price.String(), true, nil
}

// Suggestions returns template names starting with prefix, case-insensitively.
// An empty prefix returns every name.
func (s *Service) Suggestions(ctx context.Context, prefix string) ([]string, error) {
	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var names []string
	for _, t := range templates {
		if strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

// ImportTemplates stores incoming templates whose name is not taken yet and
// returns how many were stored. An incoming ID already in use is replaced.
func (s *Service) ImportTemplates(ctx context.Context, incoming []*booking.Template) (int, error) {
	current, err := s.store.ListTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading templates: %w", err)
	}
	ids := make(map[string]bool, len(current))
	for _, t := range current {
		ids[t.ID] = true
	}

	n := 0
	for _, t := range incoming {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		existing, err := s.store.FindTemplateByName(ctx, t.Name)
		if err != nil {
			return n, fmt.Errorf("looking up template: %w", err)
		}
		if existing != nil {
			s.logger.Info().Str("name", t.Name).Msg("template already exists, skipped")
			continue
		}
		if t.Color == "" {
			t.Color = s.defaultColor
		}
		if ids[t.ID] {
			t.ID = ""
		}
		if err := s.store.CreateTemplate(ctx, t); err != nil {
			return n, fmt.Errorf("importing template %q: %w", t.Name, err)
		}
		ids[t.ID] = true
		n++
	}
	if n > 0 {
		s.countSubmission("template", "import")
	}
	return n, nil
}
