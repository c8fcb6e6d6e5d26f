package gitrepo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/defbranch/internal/gitrepo"
)

const referenceSubtestNameTemplateConstant = "%d_%s"

func TestParseRepositoryReference(testInstance *testing.T) {
	testCases := []struct {
		name              string
		input             string
		expectError       bool
		expectedReference gitrepo.RepositoryReference
	}{
		{name: "owner and name", input: " conan-io/zlib ", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "zlib"}},
		{name: "https url", input: "https://github.com/conan-io/zlib", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "zlib"}},
		{name: "https url with suffix", input: "https://github.com/conan-io/zlib.git/", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "zlib"}},
		{name: "scp style ssh", input: "git@github.com:conan-io/openssl.git", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "openssl"}},
		{name: "ssh url", input: "ssh://git@github.com/conan-io/openssl.git", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "openssl"}},
		{name: "empty", input: "  ", expectError: true},
		{name: "missing owner", input: "zlib", expectError: true},
		{name: "nested path", input: "conan-io/zlib/tree", expectError: true},
		{name: "foreign host", input: "https://gitlab.com/conan-io/zlib", expectError: true},
		{name: "ssh without path", input: "git@github.com", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(referenceSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			reference, parseError := gitrepo.ParseRepositoryReference(testCase.input)
			if testCase.expectError {
				var referenceError gitrepo.InvalidReferenceError
				require.ErrorAs(testInstance, parseError, &referenceError)
				require.Equal(testInstance, testCase.input, referenceError.Input)
				return
			}

			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedReference, reference)
		})
	}
}

func TestParseOwnedRepositoryReference(testInstance *testing.T) {
	testCases := []struct {
		name              string
		input             string
		owner             string
		expectError       bool
		expectedReference gitrepo.RepositoryReference
	}{
		{name: "bare name with owner", input: " openssl ", owner: "conan-io", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "openssl"}},
		{name: "bare name with git suffix", input: "openssl.git", owner: "conan-io", expectedReference: gitrepo.RepositoryReference{Owner: "conan-io", Name: "openssl"}},
		{name: "qualified name keeps its owner", input: "bincrafters/zlib", owner: "conan-io", expectedReference: gitrepo.RepositoryReference{Owner: "bincrafters", Name: "zlib"}},
		{name: "remote url keeps its owner", input: "git@github.com:bincrafters/zlib.git", owner: "conan-io", expectedReference: gitrepo.RepositoryReference{Owner: "bincrafters", Name: "zlib"}},
		{name: "bare name without owner", input: "openssl", expectError: true},
		{name: "foreign host with owner", input: "https://gitlab.com/conan-io/zlib", owner: "conan-io", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(referenceSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			reference, parseError := gitrepo.ParseOwnedRepositoryReference(testCase.input, testCase.owner)
			if testCase.expectError {
				var referenceError gitrepo.InvalidReferenceError
				require.ErrorAs(testInstance, parseError, &referenceError)
				return
			}

			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedReference, reference)
		})
	}
}

func TestRepositoryReferenceFullName(testInstance *testing.T) {
	reference := gitrepo.RepositoryReference{Owner: "conan-io", Name: "zlib"}
	require.Equal(testInstance, "conan-io/zlib", reference.FullName())
}
