package localstate

const getStateSQL = `
SELECT state_value
FROM local_state
WHERE state_key = ?
`

const upsertStateSQL = `
INSERT INTO local_state (state_key, state_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(state_key) DO UPDATE SET
    state_value = excluded.state_value,
    updated_at = excluded.updated_at
`
