package hashing

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// StaffPasswords хэширует пароли сотрудников админки.
type StaffPasswords struct {
	cost int
}

// NewBcrypt: cost вне [bcrypt.MinCost, bcrypt.MaxCost] (в том числе 0 из пустого env) заменяется на DefaultCost.
func NewBcrypt(cost int) *StaffPasswords {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &StaffPasswords{cost: cost}
}

func (p *StaffPasswords) Cost() int { return p.cost }

func (p *StaffPasswords) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash staff password: %w", err)
	}
	return string(h), nil
}

// Compare: битый хэш в базе считается несовпадением.
func (p *StaffPasswords) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash сообщает, что хэш сделан с другим cost и при успешном входе его стоит пересчитать.
func (p *StaffPasswords) NeedsRehash(hash string) bool {
	c, err := bcrypt.Cost([]byte(hash))
	return err != nil || c != p.cost
}
