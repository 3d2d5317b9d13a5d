package dto

import "pathwise.app/mentor/internal/domain"

type SkillInput struct {
	Name        string   `json:"name"`
	Proficiency string   `json:"proficiency"`
	Categories  []string `json:"categories"`
}

type GeneratePlanRequest struct {
	Objective string       `json:"objective"`
	Skills    []SkillInput `json:"skills"`
}

// GeneratePlanResponse is returned for every well-formed request, including
// rejected objectives.
type GeneratePlanResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

func (r GeneratePlanRequest) DomainSkills() []domain.Skill {
	if len(r.Skills) == 0 {
		return nil
	}
	skills := make([]domain.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, domain.Skill{
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Categories:  s.Categories,
		})
	}
	return skills
}
