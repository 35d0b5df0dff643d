package agent

import (
	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// taskTiers maps each agent to its model tier. Retrieval-style agents use
// the fast model; agents that weigh arguments use the reasoning model.
var taskTiers = map[pipeline.TaskName]models.ModelTier{
	pipeline.TaskIndustry:   models.ModelTierFast,
	pipeline.TaskNews:       models.ModelTierFast,
	pipeline.TaskQuant:      models.ModelTierFast,
	pipeline.TaskCompetitor: models.ModelTierFast,
	pipeline.TaskBacktest:   models.ModelTierFast,
	pipeline.TaskHedging:    models.ModelTierReasoning,
	pipeline.TaskDebate:     models.ModelTierReasoning,
	pipeline.TaskJudge:      models.ModelTierReasoning,
}

// SelectTier returns the model tier for a task. Unknown tasks get the
// reasoning model.
func SelectTier(task pipeline.TaskName) models.ModelTier {
	if tier, ok := taskTiers[task]; ok {
		return tier
	}
	return models.ModelTierReasoning
}
