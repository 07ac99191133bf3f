package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
)

// Fallback replies. Generation failures are swallowed on purpose: the caller
// always gets friendly text, never an error.
const (
	fallbackReply     = "I'm sorry, I couldn't process your request at the moment. Please try again."
	fallbackChatReply = "I'm experiencing technical difficulties. Please try again later."

	planSystemPrompt = "You are a certified personal trainer and nutrition coach at FitHub. " +
		"Produce structured, actionable plans in plain text with clear day-by-day sections. " +
		"Flag anything that needs a medical professional."
)

type (
	// WorkoutRequest describes what the member wants out of a training plan.
	WorkoutRequest struct {
		Goal         string   `json:"goal" validate:"required"`
		FitnessLevel string   `json:"fitness_level"`
		DaysPerWeek  int      `json:"days_per_week" validate:"omitempty,min=1,max=7"`
		Equipment    []string `json:"equipment"`
		Restrictions string   `json:"restrictions"`
	}

	NutritionRequest struct {
		Goal              string   `json:"goal" validate:"required"`
		DietaryPreference string   `json:"dietary_preference"`
		Allergies         []string `json:"allergies"`
		TargetCalories    int      `json:"target_calories" validate:"omitempty,gt=0"`
	}

	InjuryRequest struct {
		Injury       string `json:"injury" validate:"required"`
		Since        string `json:"since"`
		FitnessLevel string `json:"fitness_level"`
	}

	// ComprehensiveRequest asks for the full program: training, nutrition and
	// motivation in one shot.
	ComprehensiveRequest struct {
		Workout   WorkoutRequest   `json:"workout"`
		Nutrition NutritionRequest `json:"nutrition"`
	}

	ComprehensivePlan struct {
		Workout    string `json:"workout"`
		Nutrition  string `json:"nutrition"`
		Motivation string `json:"motivation"`
	}

	Service interface {
		WorkoutPlan(ctx context.Context, req WorkoutRequest) string
		NutritionPlan(ctx context.Context, req NutritionRequest) string
		ProgressAnalysis(ctx context.Context, mbr member.Member) string
		Motivation(ctx context.Context, name string) string
		InjuryRecovery(ctx context.Context, req InjuryRequest) string
		ClassRecommendation(ctx context.Context, mbr member.Member, classes []class.Class) string
		Comprehensive(ctx context.Context, req ComprehensiveRequest) ComprehensivePlan
		Chat(ctx context.Context, role, message string) string
	}

	service struct {
		gen    core.TextGenerator
		logger core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(gen core.TextGenerator, logger core.Logger) *service {
	return &service{gen: gen, logger: logger}
}

func (r WorkoutRequest) Validate() error   { return core.Validate.Struct(r) }
func (r NutritionRequest) Validate() error { return core.Validate.Struct(r) }
func (r InjuryRequest) Validate() error    { return core.Validate.Struct(r) }

// generate runs one completion and swallows failures into the fallback text.
func (svc *service) generate(ctx context.Context, system, prompt, fallback string) string {
	text, err := svc.gen.Generate(ctx, system, prompt)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("generating text: %v", err))
		return fallback
	}
	if text = strings.TrimSpace(text); text == "" {
		return fallback
	}
	return text
}

func (svc *service) WorkoutPlan(ctx context.Context, req WorkoutRequest) string {
	var b strings.Builder
	b.WriteString("Create a weekly workout plan.\n")
	fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	if req.FitnessLevel != "" {
		fmt.Fprintf(&b, "Fitness level: %s\n", req.FitnessLevel)
	}
	if req.DaysPerWeek > 0 {
		fmt.Fprintf(&b, "Training days per week: %d\n", req.DaysPerWeek)
	}
	if len(req.Equipment) > 0 {
		fmt.Fprintf(&b, "Available equipment: %s\n", strings.Join(req.Equipment, ", "))
	}
	if req.Restrictions != "" {
		fmt.Fprintf(&b, "Restrictions: %s\n", req.Restrictions)
	}
	return svc.generate(ctx, planSystemPrompt, b.String(), fallbackReply)
}

func (svc *service) NutritionPlan(ctx context.Context, req NutritionRequest) string {
	var b strings.Builder
	b.WriteString("Create a weekly nutrition plan.\n")
	fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	if req.DietaryPreference != "" {
		fmt.Fprintf(&b, "Dietary preference: %s\n", req.DietaryPreference)
	}
	if len(req.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergies: %s\n", strings.Join(req.Allergies, ", "))
	}
	if req.TargetCalories > 0 {
		fmt.Fprintf(&b, "Target daily calories: %d\n", req.TargetCalories)
	}
	return svc.generate(ctx, planSystemPrompt, b.String(), fallbackReply)
}

func (svc *service) ProgressAnalysis(ctx context.Context, mbr member.Member) string {
	var b strings.Builder
	b.WriteString("Analyze this member's training progress and suggest next steps.\n")
	fmt.Fprintf(&b, "Name: %s\n", mbr.Name)
	fmt.Fprintf(&b, "Membership: %s (%s)\n", mbr.MembershipType, mbr.Status)
	fmt.Fprintf(&b, "Sessions completed: %d of %d (%d%%)\n", mbr.CompletedSessions, mbr.TotalSessions, mbr.ProgressPercentage())
	if !mbr.MembershipEndDate.IsZero() {
		fmt.Fprintf(&b, "Membership ends: %s\n", mbr.MembershipEndDate)
	}
	return svc.generate(ctx, planSystemPrompt, b.String(), fallbackReply)
}

func (svc *service) Motivation(ctx context.Context, name string) string {
	prompt := fmt.Sprintf("Write a short motivational message (2-3 sentences) for gym member %s.", name)
	return svc.generate(ctx, planSystemPrompt, prompt, fallbackReply)
}

func (svc *service) InjuryRecovery(ctx context.Context, req InjuryRequest) string {
	var b strings.Builder
	b.WriteString("Suggest a cautious return-to-training approach after an injury. " +
		"Stress that this is not medical advice.\n")
	fmt.Fprintf(&b, "Injury: %s\n", req.Injury)
	if req.Since != "" {
		fmt.Fprintf(&b, "Since: %s\n", req.Since)
	}
	if req.FitnessLevel != "" {
		fmt.Fprintf(&b, "Fitness level: %s\n", req.FitnessLevel)
	}
	return svc.generate(ctx, planSystemPrompt, b.String(), fallbackReply)
}

func (svc *service) ClassRecommendation(ctx context.Context, mbr member.Member, classes []class.Class) string {
	var b strings.Builder
	b.WriteString("Recommend up to 3 of the following classes for this member, with reasons.\n")
	fmt.Fprintf(&b, "Member: %s, membership %s, progress %d%%\n", mbr.Name, mbr.MembershipType, mbr.ProgressPercentage())
	b.WriteString("Classes:\n")
	for i := range classes {
		cls := &classes[i]
		fmt.Fprintf(&b, "- %s (%s, %s) on %s at %s, %d spots left\n",
			cls.Name, cls.ClassType, cls.DifficultyLevel, cls.ClassDate, cls.StartTime, cls.AvailableSpots())
	}
	return svc.generate(ctx, planSystemPrompt, b.String(), fallbackReply)
}

func (svc *service) Comprehensive(ctx context.Context, req ComprehensiveRequest) ComprehensivePlan {
	return ComprehensivePlan{
		Workout:    svc.WorkoutPlan(ctx, req.Workout),
		Nutrition:  svc.NutritionPlan(ctx, req.Nutrition),
		Motivation: svc.Motivation(ctx, "there"),
	}
}

func (svc *service) Chat(ctx context.Context, role, message string) string {
	persona := PersonaForRole(role)
	return svc.generate(ctx, persona.SystemPrompt(), message, fallbackChatReply)
}
