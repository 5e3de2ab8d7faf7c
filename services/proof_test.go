package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

func TestValidateProof(t *testing.T) {
	stack := newTestStack(t)
	now := time.Now().Unix()

	tests := []struct {
		name  string
		proof model.ZkTLSProof
		want  bool
	}{
		{
			name:  "valid",
			proof: model.ZkTLSProof{ID: "p1", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "hash", Timestamp: now},
			want:  true,
		},
		{
			name:  "empty signature",
			proof: model.ZkTLSProof{ID: "p2", ProofType: shared.ProofTypePetCare, Signature: "", DataHash: "hash", Timestamp: now},
			want:  false,
		},
		{
			name:  "empty data hash",
			proof: model.ZkTLSProof{ID: "p3", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "", Timestamp: now},
			want:  false,
		},
		{
			name:  "too far in the future",
			proof: model.ZkTLSProof{ID: "p4", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "hash", Timestamp: now + shared.ProofMaxFutureSkew + 60},
			want:  false,
		},
		{
			name:  "within skew tolerance",
			proof: model.ZkTLSProof{ID: "p5", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "hash", Timestamp: now + shared.ProofMaxFutureSkew - 10},
			want:  true,
		},
		{
			name:  "arbitrarily old",
			proof: model.ZkTLSProof{ID: "p6", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "hash", Timestamp: 1},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stack.proof.ValidateProof(&tt.proof))
		})
	}
}

func TestProofStoreLastWriteWins(t *testing.T) {
	stack := newTestStack(t)
	now := time.Now().Unix()

	first := &model.ZkTLSProof{ID: "proof-1", ProofType: shared.ProofTypePetCare, Signature: "sig-a", DataHash: "hash-a", Timestamp: now}
	require.NoError(t, stack.sql.SaveProof(first))

	second := &model.ZkTLSProof{ID: "proof-1", ProofType: shared.ProofTypeGameSession, Signature: "sig-b", DataHash: "hash-b", Timestamp: now}
	require.NoError(t, stack.sql.SaveProof(second))

	stored, err := stack.proof.GetProof("proof-1")
	require.NoError(t, err)
	assert.Equal(t, "hash-b", stored.DataHash)
	assert.Equal(t, shared.ProofTypeGameSession, stored.ProofType)
}

func TestGetProofNotFound(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.proof.GetProof("missing")
	requireAppError(t, err, 404)
}

func TestMarkVerified(t *testing.T) {
	stack := newTestStack(t)

	proof := &model.ZkTLSProof{ID: "proof-1", ProofType: shared.ProofTypePetCare, Signature: "sig", DataHash: "hash", Timestamp: time.Now().Unix()}
	require.NoError(t, stack.sql.SaveProof(proof))

	_, err := stack.proof.MarkVerified("proof-1", "xion1nobody")
	requireAppError(t, err, 403)

	stored, err := stack.proof.GetProof("proof-1")
	require.NoError(t, err)
	assert.False(t, stored.Verified)

	updated, err := stack.proof.MarkVerified("proof-1", testAdmin)
	require.NoError(t, err)
	assert.True(t, updated.Verified)

	stored, err = stack.proof.GetProof("proof-1")
	require.NoError(t, err)
	assert.True(t, stored.Verified)
}

func TestMarkVerifiedMissingProof(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.proof.MarkVerified("missing", testAdmin)
	requireAppError(t, err, 404)
}
