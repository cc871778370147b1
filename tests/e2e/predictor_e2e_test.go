//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"net"
	"testing"
	"time"

	pb "github.com/godilite/airsat-server/api/v1"
	handler "github.com/godilite/airsat-server/internal/grpc"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/repository"
	"github.com/godilite/airsat-server/internal/service"
	grpcsrv "github.com/godilite/airsat-server/pkg/grpc/server"
	"github.com/godilite/airsat-server/tests/e2e/mocks"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const modelsDir = "../../models"

type testEnv struct {
	client pb.SatisfactionPredictorClient
	health healthpb.HealthClient
	db     *sql.DB
	cache  *mocks.TrackingCache
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

// setup wires the real registry, repositories and service behind a gRPC
// server listening on an in-memory connection.
func setup(t *testing.T) *testEnv {
	t.Helper()

	registry, err := model.LoadRegistry(modelsDir)
	require.NoError(t, err)

	db := setupTestDB(t)
	trackedCache := mocks.NewTrackingCache()
	logger := zap.NewNop()

	svc := service.NewPredictionService(
		registry,
		repository.NewPredictionRepository(db),
		repository.NewDashboardRepository(db),
		trackedCache,
		logger,
		time.Minute,
	)

	lis := bufconn.Listen(1 << 20)
	server, err := grpcsrv.New(grpcsrv.WithListener(lis), grpcsrv.WithLogger(logger), grpcsrv.WithLogging(true))
	require.NoError(t, err)
	server.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterSatisfactionPredictorServer(s, handler.NewGRPCHandlers(svc, logger))
	})
	server.Start()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		db.Close()
	})

	return &testEnv{
		client: pb.NewSatisfactionPredictorClient(conn),
		health: healthpb.NewHealthClient(conn),
		db:     db,
		cache:  trackedCache,
	}
}

func scenarioInput(class string) map[string]any {
	return map[string]any{
		"Age":                        25,
		"Gender":                     "Male",
		"Customer_Type":              "Loyal Customer",
		"Travel_Type":                "Business travel",
		"Class":                      class,
		"Flight_Distance":            500.0,
		"departure_delay_in_minutes": 0,
	}
}

func predictRequest(t *testing.T, modelName string, input map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(map[string]any{"model": modelName, "input": input})
	require.NoError(t, err)
	return req
}

func featureValues(t *testing.T, resp *structpb.Struct) map[string]float64 {
	t.Helper()
	out := map[string]float64{}
	for _, f := range resp.AsMap()["features"].([]any) {
		m := f.(map[string]any)
		out[m["name"].(string)] = m["value"].(float64)
	}
	return out
}

func TestE2E_Health(t *testing.T) {
	env := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := env.health.Check(ctx, &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestE2E_ListModels(t *testing.T) {
	env := setup(t)

	resp, err := env.client.ListModels(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, []any{"logistic_regression", "random_forest", "decision_tree"}, resp.AsMap()["models"])
}

func TestE2E_Scenario1(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	resp, err := env.client.Predict(ctx, predictRequest(t, "logistic_regression", scenarioInput("Eco")))
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"Age":                        25,
		"Flight_Distance":            500,
		"departure_delay_in_minutes": 0,
		"Type_of_Travel_Business":    1,
		"Type_of_Travel_Personal":    0,
		"Class_Eco":                  1,
		"Class_Business":             0,
		"CustomerType_disloyal":      0,
	}, featureValues(t, resp))
	assert.Equal(t, model.LabelNotSatisfied, resp.AsMap()["label"])

	proba := resp.AsMap()["probabilities"].([]any)
	require.Len(t, proba, 2)
	assert.InDelta(t, 1.0, proba[0].(float64)+proba[1].(float64), 1e-9)
}

func TestE2E_Scenario2_EcoPlusGap(t *testing.T) {
	env := setup(t)

	resp, err := env.client.Predict(context.Background(), predictRequest(t, "logistic_regression", scenarioInput("Eco Plus")))
	require.NoError(t, err)

	values := featureValues(t, resp)
	assert.Equal(t, 0.0, values["Class_Eco"])
	assert.Equal(t, 0.0, values["Class_Business"])
	assert.Equal(t, model.LabelSatisfied, resp.AsMap()["label"])
}

func TestE2E_SameVectorAcrossModels(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	var first map[string]float64
	labels := map[string]any{}
	for _, name := range []string{"logistic_regression", "random_forest", "decision_tree"} {
		resp, err := env.client.Predict(ctx, predictRequest(t, name, scenarioInput("Eco")))
		require.NoError(t, err, name)

		values := featureValues(t, resp)
		if first == nil {
			first = values
		}
		assert.Equal(t, first, values, name)
		labels[name] = resp.AsMap()["label"]
	}

	assert.Equal(t, map[string]any{
		"logistic_regression": model.LabelNotSatisfied,
		"random_forest":       model.LabelSatisfied,
		"decision_tree":       model.LabelNotSatisfied,
	}, labels)
}

func TestE2E_CachingBehavior(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	req := predictRequest(t, "random_forest", scenarioInput("Business"))

	resp1, err := env.client.Predict(ctx, req)
	require.NoError(t, err)

	// The cache is filled in the background after a miss.
	require.Eventually(t, func() bool { return env.cache.Len() == 1 }, time.Second, 10*time.Millisecond)

	resp2, err := env.client.Predict(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, resp1.AsMap()["label"], resp2.AsMap()["label"])
	assert.Equal(t, resp1.AsMap()["probabilities"], resp2.AsMap()["probabilities"])
	assert.NotEqual(t, resp1.AsMap()["id"], resp2.AsMap()["id"], "each submission gets its own ID")

	gets, sets, hits := env.cache.Stats()
	t.Logf("Cache stats - Gets: %d, Sets: %d, Hits: %d", gets, sets, hits)
	assert.Equal(t, 1, hits)
}

func TestE2E_HistoryAndDashboard(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	for _, name := range []string{"logistic_regression", "random_forest"} {
		_, err := env.client.Predict(ctx, predictRequest(t, name, scenarioInput("Eco")))
		require.NoError(t, err)
	}

	limit, err := structpb.NewStruct(map[string]any{"limit": 10})
	require.NoError(t, err)
	hist, err := env.client.ListPredictions(ctx, limit)
	require.NoError(t, err)

	m := hist.AsMap()
	records := m["predictions"].([]any)
	require.Len(t, records, 2)
	assert.Equal(t, "random_forest", records[0].(map[string]any)["model"], "newest first")
	assert.Equal(t, map[string]any{model.LabelSatisfied: 1.0, model.LabelNotSatisfied: 1.0}, m["label_counts"])

	dash, err := env.client.GetDashboard(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	d := dash.AsMap()
	assert.Len(t, d["top_airlines"], 10)
	assert.Len(t, d["satisfaction_trend"], 4)
	assert.Len(t, d["common_issues"], 4)
}

func TestE2E_ErrorScenarios(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *structpb.Struct
		code codes.Code
	}{
		{"unknown model", predictRequest(t, "svm", scenarioInput("Eco")), codes.NotFound},
		{"age out of range", predictRequest(t, "decision_tree", map[string]any{"Age": 0}), codes.InvalidArgument},
		{"unknown class", predictRequest(t, "decision_tree", map[string]any{"Class": "First"}), codes.InvalidArgument},
		{"missing model", predictRequest(t, "", nil), codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.client.Predict(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}

	var count int
	require.NoError(t, env.db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&count))
	assert.Zero(t, count, "failed submissions are not recorded")
}
