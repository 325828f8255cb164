package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

// ReferenceData is the TOML schema of the legal knowledge base seed file
type ReferenceData struct {
	Laws        []Law        `toml:"law"`
	Obligations []Obligation `toml:"obligation"`
}

// Law represents one regulation entry in the seed file
type Law struct {
	ID             string   `toml:"id"`
	Name           string   `toml:"name"`
	Category       string   `toml:"category"`
	Ministry       string   `toml:"ministry"`
	EffectiveDate  string   `toml:"effective_date"`
	SourceURL      string   `toml:"source_url"`
	Summary        string   `toml:"summary"`
	ApplicableTags []string `toml:"applicable_tags"`
}

// Validate checks if the law entry is valid
func (l *Law) Validate() error {
	if err := types.LawID(l.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid law ID")
	}
	if l.Name == "" {
		return goerr.New("law name is required", goerr.V(LawIDKey, l.ID))
	}
	if !types.Category(l.Category).IsValid() {
		return goerr.New("invalid law category", goerr.V(LawIDKey, l.ID), goerr.V("category", l.Category))
	}
	if len(l.ApplicableTags) == 0 {
		return goerr.New("law declares no applicable tags", goerr.V(LawIDKey, l.ID))
	}
	return nil
}

// Condition represents one applicability clause in the seed file
type Condition struct {
	Kind         string `toml:"kind"`
	MinEmployees int    `toml:"min_employees"`
	MachineLevel string `toml:"machine_level"`
}

// Obligation represents one checkable duty in the seed file
type Obligation struct {
	ID                    string      `toml:"id"`
	LawID                 string      `toml:"law_id"`
	Category              string      `toml:"category"`
	RiskWeight            int         `toml:"risk_weight"`
	Conditions            []Condition `toml:"condition"`
	RequiredEvidence      []string    `toml:"required_evidence"`
	Description           string      `toml:"description"`
	SimplifiedDescription string      `toml:"simplified_description"`
	ChecklistQuestion     string      `toml:"checklist_question"`
	GuidanceText          string      `toml:"guidance_text"`
}

// Validate checks if the obligation entry is valid
func (o *Obligation) Validate() error {
	if err := types.ObligationID(o.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid obligation ID")
	}
	if o.LawID == "" {
		return goerr.New("obligation law_id is required", goerr.V(ObligationKey, o.ID))
	}
	if !types.Category(o.Category).IsValid() {
		return goerr.New("invalid obligation category", goerr.V(ObligationKey, o.ID), goerr.V("category", o.Category))
	}
	if err := types.RiskWeight(o.RiskWeight).Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk weight", goerr.V(ObligationKey, o.ID))
	}
	if o.ChecklistQuestion == "" {
		return goerr.New("obligation checklist question is required", goerr.V(ObligationKey, o.ID))
	}
	for _, cond := range o.Conditions {
		if !types.ClauseKind(cond.Kind).IsKnown() {
			return goerr.New("unknown condition kind", goerr.V(ObligationKey, o.ID), goerr.V("kind", cond.Kind))
		}
	}
	return nil
}

// Validate checks if the reference data is consistent
func (d *ReferenceData) Validate() error {
	lawIDs := make(map[string]bool)
	for _, law := range d.Laws {
		if err := law.Validate(); err != nil {
			return goerr.Wrap(err, "invalid law")
		}
		if lawIDs[law.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate law ID", goerr.V(LawIDKey, law.ID))
		}
		lawIDs[law.ID] = true
	}

	obligationIDs := make(map[string]bool)
	for _, obl := range d.Obligations {
		if err := obl.Validate(); err != nil {
			return goerr.Wrap(err, "invalid obligation")
		}
		if obligationIDs[obl.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate obligation ID", goerr.V(ObligationKey, obl.ID))
		}
		obligationIDs[obl.ID] = true
		if !lawIDs[obl.LawID] {
			return goerr.Wrap(ErrUnknownLawID, "obligation references unknown law",
				goerr.V(ObligationKey, obl.ID),
				goerr.V(LawIDKey, obl.LawID))
		}
	}

	return nil
}

// LoadReferenceData loads the legal knowledge base from a TOML file
func LoadReferenceData(path string) (*ReferenceData, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "seed file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V(ConfigPathKey, path))
	}

	var ref ReferenceData
	if err := toml.Unmarshal(data, &ref); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed file", goerr.V(ConfigPathKey, path))
	}

	if err := ref.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed file validation failed", goerr.V(ConfigPathKey, path))
	}

	return &ref, nil
}

// ToModels converts the seed entries into domain documents
func (d *ReferenceData) ToModels() ([]*model.Law, []*model.Obligation) {
	laws := make([]*model.Law, len(d.Laws))
	for i, l := range d.Laws {
		tags := make([]types.Tag, len(l.ApplicableTags))
		for j, t := range l.ApplicableTags {
			tags[j] = types.Tag(t)
		}
		laws[i] = &model.Law{
			ID:             types.LawID(l.ID),
			Name:           l.Name,
			Category:       types.Category(l.Category),
			Ministry:       l.Ministry,
			EffectiveDate:  l.EffectiveDate,
			SourceURL:      l.SourceURL,
			Summary:        l.Summary,
			ApplicableTags: tags,
		}
	}

	obligations := make([]*model.Obligation, len(d.Obligations))
	for i, o := range d.Obligations {
		conditions := make([]model.ConditionClause, len(o.Conditions))
		for j, c := range o.Conditions {
			conditions[j] = model.ConditionClause{
				Kind:         types.ClauseKind(c.Kind),
				MinEmployees: c.MinEmployees,
				MachineLevel: types.MachineLevel(c.MachineLevel),
			}
		}
		obligations[i] = &model.Obligation{
			ID:                    types.ObligationID(o.ID),
			LawID:                 types.LawID(o.LawID),
			Category:              types.Category(o.Category),
			RiskWeight:            types.RiskWeight(o.RiskWeight),
			Conditions:            conditions,
			RequiredEvidence:      o.RequiredEvidence,
			Description:           o.Description,
			SimplifiedDescription: o.SimplifiedDescription,
			ChecklistQuestion:     o.ChecklistQuestion,
			GuidanceText:          o.GuidanceText,
		}
	}

	return laws, obligations
}
