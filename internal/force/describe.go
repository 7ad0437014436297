package force

import (
	"encoding/json"

	"github.com/forcekit/forcesql/internal/sferr"
)

// FieldType is the Salesforce field type tag as it appears in describe
// responses. See
// https://developer.salesforce.com/docs/atlas.en-us.object_reference.meta/object_reference/primitive_data_types.htm
type FieldType string

const (
	FieldID              FieldType = "id"
	FieldBase64          FieldType = "base64"
	FieldBoolean         FieldType = "boolean"
	FieldByte            FieldType = "byte"
	FieldDate            FieldType = "date"
	FieldDateTime        FieldType = "datetime"
	FieldDouble          FieldType = "double"
	FieldInt             FieldType = "int"
	FieldLong            FieldType = "long"
	FieldString          FieldType = "string"
	FieldTime            FieldType = "time"
	FieldAddress         FieldType = "address"
	FieldAnyType         FieldType = "anyType"
	FieldCalculated      FieldType = "calculated"
	FieldCurrency        FieldType = "currency"
	FieldEmail           FieldType = "email"
	FieldJunctionIDList  FieldType = "junctionIdList"
	FieldLocation        FieldType = "location"
	FieldPercent         FieldType = "percent"
	FieldPhone           FieldType = "phone"
	FieldPicklist        FieldType = "picklist"
	FieldMultiPicklist   FieldType = "multipicklist"
	FieldReference       FieldType = "reference"
	FieldTextArea        FieldType = "textarea"
	FieldURL             FieldType = "url"
	FieldComboBox        FieldType = "combobox"
	FieldEncryptedString FieldType = "encryptedstring"
	FieldMasterRecord    FieldType = "masterrecord"
)

// Field is a single field descriptor from an object describe response.
type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Length     int       `json:"length"`
	Custom     bool      `json:"custom"`
	Encrypted  bool      `json:"encrypted"`
	Precision  int       `json:"precision"`
	Updateable bool      `json:"updateable"`
	Nillable   bool      `json:"nillable"`
	Unique     bool      `json:"unique"`

	// RelationshipName is set for reference fields and names the related
	// object.
	RelationshipName string `json:"relationshipName"`
}

// Describe is a successful object describe response.
// See https://developer.salesforce.com/docs/atlas.en-us.uiapi.meta/uiapi/ui_api_responses_object_info.htm
type Describe struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FieldNames returns the names of all fields, in describe order.
// Useful for building bulk query field lists.
func (d *Describe) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// ParseDescribe decodes a raw describe JSON document.
func ParseDescribe(data []byte) (*Describe, error) {
	var desc Describe
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, sferr.Wrap(sferr.ErrAPIDecode, err, "failed to decode describe response")
	}
	return &desc, nil
}

// QueryResponse is a successful SOQL query response. Records are kept as raw
// JSON; callers decode into their own shapes.
type QueryResponse struct {
	TotalSize int               `json:"totalSize"`
	Done      bool              `json:"done"`
	Records   []json.RawMessage `json:"records"`
}

// BulkState is the lifecycle state of a bulk query job.
type BulkState string

const (
	BulkUploadComplete BulkState = "UploadComplete"
	BulkInProgress     BulkState = "InProgress"
	BulkAborted        BulkState = "Aborted"
	BulkJobComplete    BulkState = "JobComplete"
	BulkFailed         BulkState = "Failed"
)

// BulkQueryStatus is the response from creating a bulk query job or fetching
// its status.
type BulkQueryStatus struct {
	ID              string      `json:"id"`
	Operation       string      `json:"operation"`
	Object          string      `json:"object"`
	CreatedDate     string      `json:"createdDate"`
	State           BulkState   `json:"state"`
	ConcurrencyMode string      `json:"concurrencyMode"`
	ContentType     string      `json:"contentType"`
	APIVersion      json.Number `json:"apiVersion"`
	LineEnding      string      `json:"lineEnding"`
	ColumnDelimiter string      `json:"columnDelimiter"`
}

// tokenResponse is a successful token request response.
type tokenResponse struct {
	ID          string `json:"id"`
	IssuedAt    string `json:"issued_at"`
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	Signature   string `json:"signature"`
	TokenType   string `json:"token_type"`
}

// tokenError is a failed token request response.
type tokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// apiError is a generic error response body.
// The REST API returns an array of these for most failures.
type apiError struct {
	Message   string   `json:"message"`
	ErrorCode string   `json:"errorCode"`
	Fields    []string `json:"fields"`
}
