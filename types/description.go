package types

// Description the static metadata the host reads to render and wire the node
type Description struct {
	Name         string                  `json:"name"`
	DisplayName  string                  `json:"displayName"`
	Version      string                  `json:"version"`
	Icon         string                  `json:"icon,omitempty"`
	Group        []string                `json:"group,omitempty"`
	Description  string                  `json:"description,omitempty"`
	Subtitle     string                  `json:"subtitle,omitempty"`
	Defaults     map[string]interface{}  `json:"defaults,omitempty"`
	Inputs       []string                `json:"inputs"`
	Outputs      []string                `json:"outputs"`
	Credentials  []CredentialRequirement `json:"credentials,omitempty"`
	Properties   []Property              `json:"properties"`
	UsableAsTool bool                    `json:"usableAsTool,omitempty"`
	Methods      Methods                 `json:"methods"`
}

// CredentialRequirement a credential the node needs
type CredentialRequirement struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	TestedBy string `json:"testedBy,omitempty"`
}

// Property one entry of the node property schema
type Property struct {
	DisplayName      string                 `json:"displayName"`
	Name             string                 `json:"name"`
	Type             string                 `json:"type"`
	Default          interface{}            `json:"default"`
	Required         bool                   `json:"required,omitempty"`
	Description      string                 `json:"description,omitempty"`
	Placeholder      string                 `json:"placeholder,omitempty"`
	NoDataExpression bool                   `json:"noDataExpression,omitempty"`
	Options          []PropertyOption       `json:"options,omitempty"`
	TypeOptions      map[string]interface{} `json:"typeOptions,omitempty"`
	DisplayOptions   *DisplayOptions        `json:"displayOptions,omitempty"`
}

// PropertyOption one choice of an options property
type PropertyOption struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Action      string `json:"action,omitempty"`
}

// DisplayOptions controls when a property is shown
type DisplayOptions struct {
	Show map[string][]string `json:"show,omitempty"`
	Hide map[string][]string `json:"hide,omitempty"`
}

// Methods the method table the host binds to the node
type Methods struct {
	CredentialTest  []string `json:"credentialTest"`
	LoadOptions     []string `json:"loadOptions"`
	ResourceMapping []string `json:"resourceMapping"`
}
