// Package hcl_adapter loads pipeline files written in HCL into the
// format-agnostic config.Model.
//
// A pipeline file holds at most one pipeline block and any number of sample
// blocks:
//
//	pipeline {
//	  assembler     = "spades"
//	  skip_taxonomy = true
//	  checkm2_db    = "${env.HOME}/db/checkm2"
//	}
//
//	sample "s1" {
//	  fastq_1 = "reads/s1_R1.fastq.gz"
//	  fastq_2 = "reads/s1_R2.fastq.gz"
//	}
//
// Expressions may read the process environment through env.
package hcl_adapter
