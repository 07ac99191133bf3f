// Package inmemdb implements the core repositories on plain mutex-guarded
// maps. It backs the test suites and local demos; no durability.
package inmemdb

import (
	"strings"
	"sync"

	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
)

type DB struct {
	user    *userTable
	member  *memberTable
	trainer *trainerTable
	class   *classTable
}

func NewDB() *DB {
	return &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		member:  &memberTable{table: make(map[string]*member.Member)},
		trainer: &trainerTable{table: make(map[string]*trainer.Trainer)},
		class:   &classTable{table: make(map[string]*class.Class)},
	}
}

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	memberTable struct {
		mutex sync.RWMutex
		table map[string]*member.Member
	}
	trainerTable struct {
		mutex sync.RWMutex
		table map[string]*trainer.Trainer
	}
	classTable struct {
		mutex sync.RWMutex
		table map[string]*class.Class
	}
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func inList(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
