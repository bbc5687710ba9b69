package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldpool/subgraph-go/internal/adapter"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const testEndpoint = "https://graph.example.com/subgraphs/name/shieldpool-sepolia"

func TestExecute(t *testing.T) {
	testCases := []struct {
		name         string
		response     []byte
		responseErr  error
		expectedData map[string]string
		expectedErr  error
	}{
		{
			name:     "data envelope unwrapped by field name",
			response: []byte(`{"data":{"pools":[{"id":"sepolia-0xabc-0"}]}}`),
			expectedData: map[string]string{
				"pools": `[{"id":"sepolia-0xabc-0"}]`,
			},
		},
		{
			name:         "empty result set is not an error",
			response:     []byte(`{"data":{"memberships":[]}}`),
			expectedData: map[string]string{"memberships": `[]`},
		},
		{
			name:        "graphql errors joined into one error",
			response:    []byte(`{"errors":[{"message":"Undefined field"},{"message":"Type mismatch"}]}`),
			expectedErr: domain.ErrGraphQL,
		},
		{
			name:        "transport error propagated",
			responseErr: errors.New("connection refused"),
			expectedErr: errors.New("failed to call subgraph: connection refused"),
		},
		{
			name:        "malformed response body",
			response:    []byte(`{"data":`),
			expectedErr: errors.New("failed to unmarshal subgraph response"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			httpClient := mocks.NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				Post(gomock.Any(), testEndpoint, "application/json", gomock.Any()).
				Return(tc.response, tc.responseErr)

			client := NewClient(httpClient, testEndpoint, adapter.NewJSON())
			data, err := client.Execute(context.Background(), "TestQuery", "query TestQuery { pools { id } }", nil)

			if tc.expectedErr != nil {
				require.Error(t, err)
				if errors.Is(tc.expectedErr, domain.ErrGraphQL) {
					assert.ErrorIs(t, err, domain.ErrGraphQL)
					assert.Contains(t, err.Error(), "Undefined field; Type mismatch")
				} else {
					assert.Contains(t, err.Error(), tc.expectedErr.Error())
				}
				assert.Nil(t, data)
				return
			}

			require.NoError(t, err)
			require.Len(t, data, len(tc.expectedData))
			for field, raw := range tc.expectedData {
				assert.JSONEq(t, raw, string(data[field]))
			}
		})
	}
}

func TestExecuteSendsRequestBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var captured []byte
	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), testEndpoint, "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body io.Reader) ([]byte, error) {
			var err error
			captured, err = io.ReadAll(body)
			require.NoError(t, err)
			return []byte(`{"data":{}}`), nil
		})

	client := NewClient(httpClient, testEndpoint, adapter.NewJSON())
	_, err := client.Execute(context.Background(), "Memberships",
		"query Memberships($first: Int!) { memberships(first: $first) { id } }",
		map[string]any{"first": 100})
	require.NoError(t, err)

	expected := fmt.Sprintf(`{"query":%q,"variables":{"first":100},"operationName":"Memberships"}`,
		"query Memberships($first: Int!) { memberships(first: $first) { id } }")
	assert.JSONEq(t, expected, string(captured))
}

func TestExecuteMarshalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	jsonAdapter := mocks.NewMockJSON(ctrl)
	jsonAdapter.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("marshal boom"))

	client := NewClient(httpClient, testEndpoint, jsonAdapter)
	data, err := client.Execute(context.Background(), "TestQuery", "query TestQuery { pools { id } }", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal graphql request")
	assert.Nil(t, data)
}
