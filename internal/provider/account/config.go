// Package account provides the account provider: steps that create local
// users, grant group memberships, and install sudoers drop-ins.
package account

import "fmt"

// Config represents the accounts section of the manifest.
type Config struct {
	Users []User
}

// User represents one local account to reconcile.
type User struct {
	Name         string
	Shell        string
	Groups       []string
	SudoNoPasswd bool
}

// ParseConfig parses the accounts configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Users: make([]User, 0),
	}

	users, ok := raw["users"]
	if !ok {
		return cfg, nil
	}

	list, ok := users.([]interface{})
	if !ok {
		return nil, fmt.Errorf("users must be a list")
	}

	for _, u := range list {
		entry, ok := u.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("user must be an object")
		}

		user := User{}
		if name, ok := entry["name"].(string); ok {
			user.Name = name
		} else {
			return nil, fmt.Errorf("user must have a name")
		}
		if shell, ok := entry["shell"].(string); ok {
			user.Shell = shell
		}
		if nopasswd, ok := entry["sudo_nopasswd"].(bool); ok {
			user.SudoNoPasswd = nopasswd
		}
		if groups, ok := entry["groups"]; ok {
			glist, ok := groups.([]interface{})
			if !ok {
				return nil, fmt.Errorf("user %s: groups must be a list", user.Name)
			}
			for _, g := range glist {
				group, ok := g.(string)
				if !ok {
					return nil, fmt.Errorf("user %s: group must be a string", user.Name)
				}
				user.Groups = append(user.Groups, group)
			}
		}

		cfg.Users = append(cfg.Users, user)
	}

	return cfg, nil
}
