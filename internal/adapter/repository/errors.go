package repository

import "errors"

// Erros específicos do repositório
var (
	ErrNoteNotFound          = errors.New("nota de frete não encontrada")
	ErrTicketNotFound        = errors.New("bilhete não encontrado")
	ErrUserNotFound          = errors.New("usuário não encontrado")
	ErrUserDuplicateUsername = errors.New("já existe um usuário com este nome de usuário")
	ErrDatabase              = errors.New("erro de banco de dados")
)
