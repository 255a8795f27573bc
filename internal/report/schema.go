package report

// Schema is the JSON Schema (Draft 2020-12) for the catalogue written
// by WriteJSON and accepted by the import endpoint.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/spec-collector/suite.schema.json",
  "title": "Spec Collector Suite",
  "description": "Output schema for spec-collector result files",
  "type": "object",
  "required": ["features", "attributes", "trees", "metaFilePath"],
  "properties": {
    "features": {
      "type": "array",
      "items": { "$ref": "#/$defs/Feature" }
    },
    "attributes": {
      "type": "array",
      "items": { "$ref": "#/$defs/ProjectAttribute" }
    },
    "trees": {
      "type": "array",
      "items": { "$ref": "#/$defs/Tree" }
    },
    "metaFilePath": {
      "type": "string",
      "description": "Always empty"
    }
  },
  "$defs": {
    "Feature": {
      "type": "object",
      "required": ["code", "title", "fileName", "filePath", "groups", "attributes", "dependencies"],
      "properties": {
        "code": {
          "type": "string",
          "description": "Test path with '/' replaced by '_'"
        },
        "title": { "type": "string" },
        "fileName": {
          "type": "string",
          "description": "Base name without the last extension"
        },
        "filePath": {
          "type": "string",
          "pattern": "\\.yml$"
        },
        "groups": {
          "type": "array",
          "minItems": 1,
          "maxItems": 2,
          "items": { "$ref": "#/$defs/Group" }
        },
        "attributes": {
          "type": "object",
          "propertyNames": { "pattern": "^lvl[0-9]+$" },
          "additionalProperties": {
            "type": "array",
            "minItems": 1,
            "maxItems": 1,
            "items": { "type": "string" }
          }
        },
        "dependencies": {
          "type": "array",
          "maxItems": 0
        }
      }
    },
    "Group": {
      "type": "object",
      "required": ["title", "assertions"],
      "properties": {
        "title": { "type": "string" },
        "assertions": {
          "type": "array",
          "minItems": 1,
          "items": { "$ref": "#/$defs/Assertion" }
        }
      }
    },
    "Assertion": {
      "type": "object",
      "required": ["title", "automationState"],
      "properties": {
        "title": { "type": "string" },
        "automationState": {
          "type": "string",
          "enum": ["Automated", "Unknown"]
        }
      }
    },
    "ProjectAttribute": {
      "type": "object",
      "required": ["title", "code", "values"],
      "properties": {
        "title": { "type": "string" },
        "code": {
          "type": "string",
          "pattern": "^lvl[0-9]+$"
        },
        "values": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["code", "title"],
            "properties": {
              "code": { "type": "string" },
              "title": { "type": "string" }
            }
          }
        }
      }
    },
    "Tree": {
      "type": "object",
      "required": ["title", "code", "attributes"],
      "properties": {
        "title": { "type": "string" },
        "code": { "type": "string" },
        "attributes": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`
