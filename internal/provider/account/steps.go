package account

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/ports"
	"github.com/hostprep/hostprep/internal/validation"
)

// SudoersDir is where NOPASSWD drop-ins are installed.
const SudoersDir = "/etc/sudoers.d"

// UserStep creates a local user account with a home directory.
type UserStep struct {
	user   User
	id     step.ID
	runner ports.CommandRunner
	prober facts.Prober
}

// NewUserStep creates a new UserStep.
func NewUserStep(user User, runner ports.CommandRunner, prober facts.Prober) *UserStep {
	return &UserStep{
		user:   user,
		id:     userStepID(user.Name),
		runner: runner,
		prober: prober,
	}
}

// userStepID builds the step ID for a user creation step.
func userStepID(name string) step.ID {
	return step.MustNewID("acct:user:" + name)
}

// ID returns the step identifier.
func (s *UserStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *UserStep) DependsOn() []step.ID {
	return nil
}

// Check reports satisfied when the account already exists.
func (s *UserStep) Check(ctx step.RunContext) (step.Status, error) {
	if s.prober.UserExists(ctx.Context(), s.user.Name) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *UserStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "user", s.user.Name, "", "account with home directory"), nil
}

// Apply creates the account.
func (s *UserStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateUserName(s.user.Name); err != nil {
		return fmt.Errorf("invalid user name: %w", err)
	}

	args := []string{"useradd", "-m"}
	if s.user.Shell != "" {
		if err := validation.ValidateShellPath(s.user.Shell); err != nil {
			return fmt.Errorf("invalid shell path: %w", err)
		}
		args = append(args, "-s", s.user.Shell)
	}
	args = append(args, s.user.Name)

	result, err := s.runner.Run(ctx.Context(), "sudo", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("useradd %s failed: %s", s.user.Name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// GroupStep adds a user to one supplementary group.
type GroupStep struct {
	user   string
	group  string
	id     step.ID
	runner ports.CommandRunner
	prober facts.Prober
}

// NewGroupStep creates a new GroupStep. The step depends on the user's
// creation step so memberships are granted after the account exists.
func NewGroupStep(user, group string, runner ports.CommandRunner, prober facts.Prober) *GroupStep {
	return &GroupStep{
		user:   user,
		group:  group,
		id:     step.MustNewID(fmt.Sprintf("acct:group:%s-%s", user, group)),
		runner: runner,
		prober: prober,
	}
}

// ID returns the step identifier.
func (s *GroupStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *GroupStep) DependsOn() []step.ID {
	return []step.ID{userStepID(s.user)}
}

// Check reports satisfied when the user is already in the group.
func (s *GroupStep) Check(ctx step.RunContext) (step.Status, error) {
	if s.prober.GroupMember(ctx.Context(), s.user, s.group) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *GroupStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "group", s.user, "", "member of "+s.group), nil
}

// Apply appends the group membership.
func (s *GroupStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateGroupName(s.group); err != nil {
		return fmt.Errorf("invalid group name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "usermod", "-aG", s.group, s.user)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("usermod -aG %s %s failed: %s", s.group, s.user, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// SudoersStep installs a NOPASSWD drop-in for a user. The candidate file is
// staged in the temp directory, validated with visudo, and only then
// installed with the 0440 mode sudo requires. Existence of the drop-in is
// the idempotency check; an edited drop-in is not rewritten.
type SudoersStep struct {
	user   string
	id     step.ID
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewSudoersStep creates a new SudoersStep.
func NewSudoersStep(user string, runner ports.CommandRunner, fs ports.FileSystem) *SudoersStep {
	return &SudoersStep{
		user:   user,
		id:     step.MustNewID("acct:sudo:" + user),
		runner: runner,
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *SudoersStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *SudoersStep) DependsOn() []step.ID {
	return []step.ID{userStepID(s.user)}
}

// dropInPath returns the drop-in location for this user.
func (s *SudoersStep) dropInPath() string {
	return filepath.Join(SudoersDir, "hostprep-"+s.user)
}

// Check reports satisfied when the drop-in already exists.
func (s *SudoersStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.dropInPath()) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *SudoersStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "sudoers", s.dropInPath(), "", "NOPASSWD for "+s.user), nil
}

// Apply stages, validates, and installs the drop-in.
func (s *SudoersStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateUserName(s.user); err != nil {
		return fmt.Errorf("invalid user name: %w", err)
	}

	content := fmt.Sprintf("%s ALL=(ALL) NOPASSWD:ALL\n", s.user)
	staging := filepath.Join(os.TempDir(), "hostprep-sudoers-"+s.user)
	if err := s.fs.WriteFileAtomic(staging, []byte(content), 0o440); err != nil {
		return fmt.Errorf("stage sudoers drop-in: %w", err)
	}
	defer func() { _ = s.fs.Remove(staging) }()

	result, err := s.runner.Run(ctx.Context(), "sudo", "visudo", "-c", "-f", staging)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("visudo rejected drop-in for %s: %s", s.user, strings.TrimSpace(result.Stderr))
	}

	result, err = s.runner.Run(ctx.Context(), "sudo", "install", "-m", "0440", staging, s.dropInPath())
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("install sudoers drop-in for %s: %s", s.user, strings.TrimSpace(result.Stderr))
	}
	return nil
}
