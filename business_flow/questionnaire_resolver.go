// Package businessflow contains the core business logic and use cases for interview provisioning workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/attestix/attestix/config"
	"github.com/attestix/attestix/repository"
	"github.com/attestix/attestix/utils"
	"github.com/redis/go-redis/v9"
)

// QuestionnaireStructureResolver flattens a questionnaire's section -> step
// -> question hierarchy into an ordered question-id list. Soft-deleted nodes
// are filtered at every level; the flattening order is section-then-step-
// then-question in natural storage order.
type QuestionnaireStructureResolver struct {
	questionnaireRepo repository.QuestionnaireRepository
	cacheConfig       *config.CacheConfig
	rc                *redis.Client
}

// NewQuestionnaireStructureResolver creates a new resolver. The redis client
// is optional; without it every resolution hits the database.
func NewQuestionnaireStructureResolver(
	questionnaireRepo repository.QuestionnaireRepository,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
) *QuestionnaireStructureResolver {
	return &QuestionnaireStructureResolver{
		questionnaireRepo: questionnaireRepo,
		cacheConfig:       cacheConfig,
		rc:                rc,
	}
}

// Resolve returns the ordered question ids of the questionnaire. Returns
// ErrEmptyQuestionnaire when the hierarchy flattens to zero questions;
// provisioning must not proceed in that case.
func (r *QuestionnaireStructureResolver) Resolve(ctx context.Context, questionnaireID uint) ([]uint, error) {
	if ids, ok := r.fromCache(ctx, questionnaireID); ok {
		return ids, nil
	}

	sections, err := r.questionnaireRepo.SectionsByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	var questionIDs []uint
	for _, section := range sections {
		steps, err := r.questionnaireRepo.StepsBySectionID(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, step := range steps {
			questions, err := r.questionnaireRepo.QuestionsByStepID(ctx, step.ID)
			if err != nil {
				return nil, err
			}
			for _, question := range questions {
				questionIDs = append(questionIDs, question.ID)
			}
		}
	}

	if len(questionIDs) == 0 {
		return nil, ErrEmptyQuestionnaire
	}

	r.toCache(ctx, questionnaireID, questionIDs)

	return questionIDs, nil
}

// fromCache attempts a cache read; any cache failure degrades to a miss
func (r *QuestionnaireStructureResolver) fromCache(ctx context.Context, questionnaireID uint) ([]uint, bool) {
	if r.rc == nil || r.cacheConfig == nil || !r.cacheConfig.Enabled {
		return nil, false
	}

	key := r.cacheKey(questionnaireID)
	bs, err := r.rc.Get(ctx, key).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}

	var ids []uint
	if err := json.Unmarshal(bs, &ids); err != nil || len(ids) == 0 {
		return nil, false
	}

	return ids, true
}

// toCache stores the flattened list best-effort
func (r *QuestionnaireStructureResolver) toCache(ctx context.Context, questionnaireID uint, ids []uint) {
	if r.rc == nil || r.cacheConfig == nil || !r.cacheConfig.Enabled {
		return
	}

	bs, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = r.rc.Set(ctx, r.cacheKey(questionnaireID), bs, utils.QuestionnaireStructureCacheTTL).Err()
}

func (r *QuestionnaireStructureResolver) cacheKey(questionnaireID uint) string {
	return fmt.Sprintf("%s:%d", redisKey(*r.cacheConfig, utils.QuestionnaireStructureCacheKey), questionnaireID)
}

// redisKey prefixes a cache key with the configured namespace
func redisKey(cfg config.CacheConfig, key string) string {
	if cfg.RedisPrefix == "" {
		return key
	}
	return cfg.RedisPrefix + ":" + key
}
