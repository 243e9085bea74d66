// Package archive stores experiment reports in a blob store and tracks the
// latest run of each experiment.
//
// Reports are written to "<experiment>/<run-id>.report". After the blob is
// stored, a new version of the experiment's run pointer is committed to a
// Registry. Registries use conditional writes, so concurrent writers never
// lose a commit; a lost race surfaces as ErrConcurrentModification and is
// retried with the next version.
//
// # Registries
//
//   - MemoryRegistry: in-process, for tests and single-process runs
//   - DynamoRegistry: DynamoDB table with conditional puts
//
// DynamoRegistry table schema:
//
//	aws dynamodb create-table \
//	  --table-name knntune-runs \
//	  --attribute-definitions AttributeName=experiment,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=experiment,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package archive
