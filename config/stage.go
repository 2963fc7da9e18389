package config

// Stage identifies a phase of the update pipeline. Each option is scoped to a
// stage; configuration narrows as the pipeline moves from global settings down
// to a single PR.
type Stage string

// Pipeline stages, in order.
const (
	// StageGlobal covers program-level settings such as platform and logging.
	StageGlobal Stage = "global"

	// StageRepository covers settings applied per repository.
	StageRepository Stage = "repository"

	// StagePackageFile covers settings applied per package file.
	StagePackageFile Stage = "packageFile"

	// StageDepType covers settings applied per dependency type.
	StageDepType Stage = "depType"

	// StagePackage covers settings applied per package.
	StagePackage Stage = "package"

	// StageBranch covers settings for the update branch.
	StageBranch Stage = "branch"

	// StagePR covers settings for the update PR.
	StagePR Stage = "pr"
)

// stageOrder fixes the total order FilterConfig applies.
var stageOrder = []Stage{
	StageGlobal,
	StageRepository,
	StagePackageFile,
	StageDepType,
	StagePackage,
	StageBranch,
	StagePR,
}

// Index returns the stage's position in pipeline order, or -1 for a stage
// outside the known order.
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// ParseStage maps a string onto a known Stage.
func ParseStage(s string) (Stage, bool) {
	if Stage(s).Index() < 0 {
		return "", false
	}
	return Stage(s), true
}

// FilterConfig returns a copy of cfg with options scoped to stages before
// target removed. Unknown keys are always kept; filtering only ever removes
// recognized, earlier-stage options. A target outside the known order removes
// nothing.
func FilterConfig(cfg ConfigMap, target Stage) ConfigMap {
	filtered := make(ConfigMap, len(cfg))
	targetIndex := target.Index()
	for key, value := range cfg {
		if targetIndex > 0 {
			if opt, ok := OptionByName(key); ok {
				if index := opt.Stage.Index(); index >= 0 && index < targetIndex {
					continue
				}
			}
		}
		filtered[key] = value
	}
	return filtered
}
