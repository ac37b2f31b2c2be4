package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Erros de domínio
var (
	ErrEmptyUsername   = errors.New("nome de usuário não pode ser vazio")
	ErrEmptyName       = errors.New("nome não pode ser vazio")
	ErrShortPassword   = errors.New("a senha deve ter ao menos 6 caracteres")
	ErrInvalidRole     = errors.New("papel inválido, use admin ou operador")
	ErrSelfDeactivate  = errors.New("não é possível desativar o próprio usuário")
	ErrAlreadyInactive = errors.New("usuário já está inativo")
)

// Role representa o papel do usuário
type Role string

// Constantes para Role
const (
	RoleAdmin    Role = "admin"    // Acesso total, inclusive relatórios
	RoleOperator Role = "operador" // Emissão de notas e bilhetes
)

// IsValid verifica se o papel é conhecido
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// User representa um usuário do sistema
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Password    string     `json:"-"` // Hash bcrypt, nunca retornado
	Role        Role       `json:"role"`
	Active      bool       `json:"active"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewUser cria um usuário ativo com a senha já convertida em hash
func NewUser(username, name, password string, role Role, createdBy string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Username:  username,
		Name:      strings.TrimSpace(name),
		Role:      role,
		Active:    true,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrShortPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Deactivate desativa o usuário. O solicitante não pode desativar a si mesmo.
func (u *User) Deactivate(requesterID string) error {
	if u.ID == requesterID {
		return ErrSelfDeactivate
	}
	if !u.Active {
		return ErrAlreadyInactive
	}
	u.Active = false
	u.UpdatedAt = time.Now()
	return nil
}
