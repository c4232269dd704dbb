// Package hcl_adapter implements cst.Parser for the HCL native syntax.
package hcl_adapter
