package defaultbranch_test

import (
	"context"
	"sync"

	"github.com/temirov/defbranch/internal/defaultbranch"
	"github.com/temirov/defbranch/internal/githubcli"
)

const (
	testOwnerConstant               = "conan-io"
	testCompliantRepositoryConstant = "conan-io/zlib"
	testStaleRepositoryConstant     = "conan-io/openssl"
	testArchivedRepositoryConstant  = "conan-io/boost"
	testUnknownRepositoryConstant   = "conan-io/website"
)

func defaultTestPolicy() defaultbranch.PolicyConfiguration {
	return defaultbranch.PolicyConfiguration{
		CanonicalChannel:  "testing",
		CompanionChannels: []string{"stable", "testing"},
		ChannelPriority:   []string{"testing", "stable"},
		ReferenceVersion:  defaultbranch.ReferenceVersionMostRecentRelease,
	}
}

func standardBranchNames() []string {
	return []string{"testing/2.0", "stable/2.0", "testing/1.0", "stable/1.0"}
}

type setDefaultBranchCall struct {
	repository string
	branchName string
}

type stubRepositoryHost struct {
	mutex          sync.Mutex
	metadata       map[string]githubcli.RepositoryMetadata
	metadataErrors map[string]error
	branches       map[string][]string
	branchErrors   map[string]error
	summaries      []githubcli.RepositorySummary
	login          string
	loginError     error
	setError       error
	metadataCalls  []string
	listedOwner    string
	listedLimit    int
	setCalls       []setDefaultBranchCall
}

func newStandardRepositoryHost() *stubRepositoryHost {
	return &stubRepositoryHost{
		metadata: map[string]githubcli.RepositoryMetadata{
			testCompliantRepositoryConstant: {NameWithOwner: testCompliantRepositoryConstant, DefaultBranch: "testing/2.0"},
			testStaleRepositoryConstant:     {NameWithOwner: testStaleRepositoryConstant, DefaultBranch: "stable/1.0"},
			testArchivedRepositoryConstant:  {NameWithOwner: testArchivedRepositoryConstant, DefaultBranch: "stable/1.0", IsArchived: true},
			testUnknownRepositoryConstant:   {NameWithOwner: testUnknownRepositoryConstant, DefaultBranch: "main"},
		},
		branches: map[string][]string{
			testCompliantRepositoryConstant: standardBranchNames(),
			testStaleRepositoryConstant:     standardBranchNames(),
			testArchivedRepositoryConstant:  standardBranchNames(),
			testUnknownRepositoryConstant:   {"main", "gh-pages"},
		},
		login: testOwnerConstant,
	}
}

func (host *stubRepositoryHost) ResolveRepoMetadata(_ context.Context, repository string) (githubcli.RepositoryMetadata, error) {
	host.mutex.Lock()
	host.metadataCalls = append(host.metadataCalls, repository)
	host.mutex.Unlock()

	if metadataError, failing := host.metadataErrors[repository]; failing {
		return githubcli.RepositoryMetadata{}, metadataError
	}
	return host.metadata[repository], nil
}

func (host *stubRepositoryHost) ListBranches(_ context.Context, repository string) ([]string, error) {
	if branchError, failing := host.branchErrors[repository]; failing {
		return nil, branchError
	}
	return host.branches[repository], nil
}

func (host *stubRepositoryHost) ListRepositories(_ context.Context, owner string, resultLimit int) ([]githubcli.RepositorySummary, error) {
	host.mutex.Lock()
	defer host.mutex.Unlock()
	host.listedOwner = owner
	host.listedLimit = resultLimit
	return host.summaries, nil
}

func (host *stubRepositoryHost) ResolveAuthenticatedLogin(context.Context) (string, error) {
	return host.login, host.loginError
}

func (host *stubRepositoryHost) SetDefaultBranch(_ context.Context, repository string, branchName string) error {
	host.mutex.Lock()
	defer host.mutex.Unlock()
	host.setCalls = append(host.setCalls, setDefaultBranchCall{repository: repository, branchName: branchName})
	return host.setError
}

type scriptedPrompter struct {
	selectedIndex   int
	chosen          bool
	chooseError     error
	confirmAnswer   bool
	confirmError    error
	chooseQuestions []string
	chooseOptions   [][]string
	confirmations   []string
}

func (prompter *scriptedPrompter) ChooseOption(question string, options []string) (int, bool, error) {
	prompter.chooseQuestions = append(prompter.chooseQuestions, question)
	prompter.chooseOptions = append(prompter.chooseOptions, append([]string{}, options...))
	return prompter.selectedIndex, prompter.chosen, prompter.chooseError
}

func (prompter *scriptedPrompter) Confirm(question string, _ bool) (bool, error) {
	prompter.confirmations = append(prompter.confirmations, question)
	return prompter.confirmAnswer, prompter.confirmError
}
