package github

import (
	"context"
	"fmt"
	"net/http"

	"samm/internal/domain"

	"github.com/hasura/go-graphql-client"
)

// GraphQLClient looks up commits through the GitHub GraphQL API, which
// requires a token
type GraphQLClient struct {
	gql *graphql.Client
}

// NewGraphQLClient creates a GraphQL client authenticated with token
func NewGraphQLClient(httpClient *http.Client, token string) *GraphQLClient {
	return newGraphQLClient(graphqlEndpoint, httpClient, token)
}

func newGraphQLClient(endpoint string, httpClient *http.Client, token string) *GraphQLClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	transport := &tokenTransport{
		base:  httpClient.Transport,
		token: token,
	}
	authed := &http.Client{Transport: transport, Timeout: httpClient.Timeout}

	return &GraphQLClient{
		gql: graphql.NewClient(endpoint, authed),
	}
}

type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// LatestCommit returns the object id the default branch points at
func (c *GraphQLClient) LatestCommit(ctx context.Context, owner, repo string) (string, error) {
	var query struct {
		Repository struct {
			DefaultBranchRef struct {
				Target struct {
					Oid string `graphql:"oid"`
				} `graphql:"target"`
			} `graphql:"defaultBranchRef"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"name":  graphql.String(repo),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("%w: querying %s/%s: %v", domain.ErrDownloadFailed, owner, repo, err)
	}

	oid := query.Repository.DefaultBranchRef.Target.Oid
	if oid == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return oid, nil
}
