package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-coderagent-be/internal/constant"
	"ai-coderagent-be/internal/dto"
	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/internal/pkg/serverutils"
	"ai-coderagent-be/internal/repository/specification"
	"ai-coderagent-be/internal/repository/unitofwork"
	"ai-coderagent-be/pkg/coder"
	"ai-coderagent-be/pkg/coder/exemplar"
	"ai-coderagent-be/pkg/events"
	"ai-coderagent-be/pkg/knowbase"
	pktNats "ai-coderagent-be/pkg/nats"

	"github.com/google/uuid"
)

type ICoderService interface {
	// GenerateRemote runs the pipeline against the database-backed deployment:
	// project and user rows are verified, an execution record tracks the run.
	GenerateRemote(ctx context.Context, projectId, userId uuid.UUID, req *dto.GenerateCodeRequest) (*dto.GenerateCodeResponse, error)

	// GenerateLocal runs the pipeline against the standalone deployment:
	// projects are JSON files on disk, sessions live in process memory.
	GenerateLocal(ctx context.Context, req *dto.GenerateCodeLocalRequest) (*dto.GenerateCodeResponse, error)
}

// Pipeline collaborators shared by both deployment variants.
type CoderPipeline struct {
	Planner   *coder.Planner
	Finder    *exemplar.Finder
	Generator *coder.Generator
	Validator *coder.Validator
}

type coderService struct {
	pipeline CoderPipeline

	// remote deployment
	uowFactory   unitofwork.RepositoryFactory
	remoteLoader *coder.ContextLoader
	dbMemory     IMemoryService

	// local deployment
	localLoader *coder.ContextLoader
	localMemory IMemoryService

	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewCoderService(
	pipeline CoderPipeline,
	uowFactory unitofwork.RepositoryFactory,
	remoteLoader *coder.ContextLoader,
	dbMemory IMemoryService,
	localLoader *coder.ContextLoader,
	localMemory IMemoryService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ICoderService {
	return &coderService{
		pipeline:       pipeline,
		uowFactory:     uowFactory,
		remoteLoader:   remoteLoader,
		dbMemory:       dbMemory,
		localLoader:    localLoader,
		localMemory:    localMemory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *coderService) GenerateRemote(ctx context.Context, projectId, userId uuid.UUID, req *dto.GenerateCodeRequest) (*dto.GenerateCodeResponse, error) {
	if s.remoteLoader == nil || s.uowFactory == nil {
		return nil, serverutils.NewNotFoundError("Database-backed generation is not enabled in this deployment")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError("User not found")
	}

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewNotFoundError("Project not found")
	}

	agentDef, err := s.ensureAgentDefinition(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	execution := &entity.AgentExecution{
		Id:                uuid.New(),
		ProjectId:         project.Id,
		AgentDefId:        agentDef.Id,
		TriggeredByUserId: user.Id,
		UserPrompt:        req.Requirements,
		Status:            entity.ExecutionStatusStarted,
		ChatTraceName:     fmt.Sprintf("coder_generation_%s", time.Now().Format("20060102_150405")),
		CreatedAt:         time.Now(),
	}
	if err := uow.AgentExecutionRepository().Create(ctx, execution); err != nil {
		return nil, err
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = fmt.Sprintf("%s_%s_%s", user.SessionId, project.Id, execution.Id)
	}
	if err := s.dbMemory.EnsureSession(ctx, sessionId); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeGenerationStarted, map[string]interface{}{
		"execution_id": execution.Id,
		"project_id":   project.Id,
		"user_id":      user.Id,
	})

	res, runErr := s.runPipeline(ctx, pipelineInput{
		loader:       s.remoteLoader,
		memory:       s.dbMemory,
		kbKey:        project.KbObjectKey,
		projectName:  project.ProjectName,
		requirements: req.Requirements,
		projectType:  req.ProjectType,
		sessionId:    sessionId,
	})
	if runErr != nil {
		s.finishExecution(ctx, execution, entity.ExecutionStatusFailed, runErr.Error())
		s.publishEvent(ctx, events.TypeGenerationFailed, map[string]interface{}{
			"execution_id": execution.Id,
			"error":        runErr.Error(),
		})
		return nil, runErr
	}

	status := entity.ExecutionStatusCompleted
	if res.Validation != nil && !res.Validation.IsValid {
		status = entity.ExecutionStatusAwaitingFeedback
	}
	s.finishExecution(ctx, execution, status, res.Code)

	s.publishEvent(ctx, events.TypeGenerationCompleted, map[string]interface{}{
		"execution_id": execution.Id,
		"status":       string(status),
	})

	res.ProjectId = project.Id.String()
	res.ProjectName = project.ProjectName
	res.ExecutionId = execution.Id.String()
	return res, nil
}

func (s *coderService) GenerateLocal(ctx context.Context, req *dto.GenerateCodeLocalRequest) (*dto.GenerateCodeResponse, error) {
	if s.localLoader == nil {
		return nil, serverutils.NewNotFoundError("Standalone generation is not enabled in this deployment")
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}
	if err := s.localMemory.EnsureSession(ctx, sessionId); err != nil {
		return nil, err
	}

	res, err := s.runPipeline(ctx, pipelineInput{
		loader:       s.localLoader,
		memory:       s.localMemory,
		kbKey:        req.ProjectName,
		projectName:  req.ProjectName,
		requirements: req.Requirements,
		projectType:  req.ProjectType,
		sessionId:    sessionId,
	})
	if err != nil {
		return nil, err
	}

	res.ProjectName = req.ProjectName
	return res, nil
}

type pipelineInput struct {
	loader       *coder.ContextLoader
	memory       IMemoryService
	kbKey        string
	projectName  string
	requirements string
	projectType  string
	sessionId    string
}

// runPipeline is the shared plan → load → search → generate → validate flow.
// Memory writes are best-effort; a failed write never fails the generation.
func (s *coderService) runPipeline(ctx context.Context, in pipelineInput) (*dto.GenerateCodeResponse, error) {
	s.appendMemory(ctx, in.memory, in.sessionId, constant.ChatRoleUser,
		fmt.Sprintf("[CODER Generation Request] (%s) %s", in.projectType, in.requirements))

	plan := s.pipeline.Planner.Plan(ctx, in.requirements, in.projectType)

	kbCtx, err := in.loader.Load(ctx, in.kbKey, in.projectType, in.sessionId)
	if err != nil {
		if errors.Is(err, knowbase.ErrProjectNotFound) {
			return nil, serverutils.NewNotFoundError(fmt.Sprintf("Project knowledge base not found for '%s'", in.projectName))
		}
		return nil, err
	}

	exemplars := s.pipeline.Finder.Find(ctx, in.requirements, kbCtx.CodeSections, exemplar.DefaultMaxExemplars)

	code, err := s.pipeline.Generator.Generate(ctx, in.requirements, in.projectType, exemplars, kbCtx.TribalKB, kbCtx.ConversationHistory)
	if err != nil {
		return nil, err
	}

	isValid, validation := s.pipeline.Validator.Validate(ctx, code, in.projectType, in.requirements)

	s.appendMemory(ctx, in.memory, in.sessionId, constant.ChatRoleAssistant,
		fmt.Sprintf("[CODER Generated Code] project='%s' type='%s' (valid=%t)\n\n%s", in.projectName, in.projectType, isValid, code))

	message := "Code generation completed"
	if !isValid {
		message = "Code generation completed with warnings"
	}

	return &dto.GenerateCodeResponse{
		Success:       true,
		Message:       message,
		SessionId:     in.sessionId,
		Plan:          plan,
		ExemplarsUsed: exemplars,
		Code:          code,
		Validation:    validation,
	}, nil
}

// ensureAgentDefinition returns the CODER definition, creating it on first use.
func (s *coderService) ensureAgentDefinition(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.AgentDefinition, error) {
	def, err := uow.AgentDefinitionRepository().FindOne(ctx, specification.ByAgentName{AgentName: constant.CoderAgentName})
	if err != nil {
		return nil, err
	}
	if def != nil {
		return def, nil
	}

	def = &entity.AgentDefinition{
		Id:              uuid.New(),
		AgentName:       constant.CoderAgentName,
		AgentCategory:   constant.CoderAgentCategory,
		Description:     constant.CoderAgentDescription,
		CreatedByUserId: userId,
		CreatedAt:       time.Now(),
	}
	if err := uow.AgentDefinitionRepository().Create(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *coderService) finishExecution(ctx context.Context, execution *entity.AgentExecution, status entity.ExecutionStatus, responseText string) {
	now := time.Now()
	execution.Status = status
	execution.AgentResponseText = responseText
	execution.CompletedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AgentExecutionRepository().Update(ctx, execution); err != nil {
		s.logger.Error("CODER", "Failed to update execution record", map[string]interface{}{
			"execution_id": execution.Id,
			"status":       string(status),
			"error":        err.Error(),
		})
	}
}

func (s *coderService) appendMemory(ctx context.Context, memory IMemoryService, sessionId, role, content string) {
	if err := memory.AppendMessage(ctx, sessionId, role, content); err != nil {
		s.logger.Warn("CODER", "Failed to append conversation message", map[string]interface{}{
			"session_id": sessionId,
			"role":       role,
			"error":      err.Error(),
		})
	}
}

func (s *coderService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Events feed auxiliary consumers; generation never fails on them.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("CODER", "Failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
