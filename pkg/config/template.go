package config

// Template is the commented configuration written when no codesnap.yml
// exists at the default location.
const Template = `# CodeSnap Configuration File
# Examples:
# folders:
#   - src           # relative to this config file
#   - ../shared     # parent directory
#   - utils         # project subdirectory
#
# files:
#   - package.json  # individual files to include
#   - config.js     # relative to this config file
#
# ignore:
#   - "**/*.test.js"        # ignore test files
#   - "**/node_modules/**"  # ignore node_modules
#   - "**/.git/**"          # ignore git directory
#
# tree_depth: 3 # maximum depth for --tree output (default: unlimited)

folders:

files:

ignore:
`
