package plan

import "github.com/sajidbaba1/fithub/core/user"

// Persona selects the assistant's voice for a chat session. It is a closed
// enum; SystemPrompt switches exhaustively over its values.
type Persona int

const (
	PersonaDefault Persona = iota
	PersonaOwner
	PersonaAdmin
	PersonaManager
	PersonaTrainer
	PersonaReceptionist
	PersonaMember
)

// PersonaForRole maps an authenticated role to its chat persona; unknown or
// empty roles fall back to the default persona.
func PersonaForRole(role string) Persona {
	switch role {
	case user.RoleOwner:
		return PersonaOwner
	case user.RoleAdmin:
		return PersonaAdmin
	case user.RoleManager:
		return PersonaManager
	case user.RoleTrainer:
		return PersonaTrainer
	case user.RoleReceptionist:
		return PersonaReceptionist
	case user.RoleMember:
		return PersonaMember
	default:
		return PersonaDefault
	}
}

func (p Persona) String() string {
	switch p {
	case PersonaOwner:
		return "owner"
	case PersonaAdmin:
		return "admin"
	case PersonaManager:
		return "manager"
	case PersonaTrainer:
		return "trainer"
	case PersonaReceptionist:
		return "receptionist"
	case PersonaMember:
		return "member"
	default:
		return "default"
	}
}

// SystemPrompt is the instruction framing every completion for this persona.
func (p Persona) SystemPrompt() string {
	switch p {
	case PersonaOwner, PersonaAdmin:
		return "You are FitHub AI Assistant for gym administrators. Help with business insights, " +
			"member management strategy, staffing and operational decisions. Be concise and data-oriented."
	case PersonaManager:
		return "You are FitHub AI Assistant for gym managers. Help with scheduling, staff coordination, " +
			"member retention and day-to-day operations. Be practical and concise."
	case PersonaTrainer:
		return "You are FitHub AI Assistant for fitness trainers. Help with workout programming, " +
			"client progress, exercise technique and class planning. Be specific and safety-conscious."
	case PersonaReceptionist:
		return "You are FitHub AI Assistant for front-desk staff. Help with member inquiries, " +
			"class schedules, membership plans and check-in procedures. Be friendly and clear."
	case PersonaMember:
		return "You are FitHub AI Assistant for gym members. Help with workouts, nutrition, " +
			"class selection and fitness goals. Be encouraging and easy to understand. " +
			"Recommend consulting a professional for medical concerns."
	default:
		return "You are FitHub AI Assistant for a gym management platform. " +
			"Answer questions about fitness, classes and memberships helpfully and concisely."
	}
}
